// Package logging builds a structured log/slog logger from the [logger]
// section of a rastro configuration. Console records are written as text;
// when log_to_file is set, records at or above log_file_level are also
// appended to the log file as JSON.
package logging
