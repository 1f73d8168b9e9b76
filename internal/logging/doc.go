// Package logging builds the zap logger and reads its file back.
//
// The log file is JSON, rotated by lumberjack under the configured log
// directory. The terminal UI logs to the file only and shows recent entries
// through Tail; serve mode also writes to stdout.
package logging
