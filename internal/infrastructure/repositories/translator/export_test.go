package translator

// TruncateForLog exports truncateForLog for testing.
var TruncateForLog = truncateForLog //nolint:gochecknoglobals // test export
