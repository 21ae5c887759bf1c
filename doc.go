// Package filelog provides a structured logging sink that writes records to a
// fixed ring of numbered log files through a single background writer.
//
// Producers never touch the file system. Each record is rendered on the
// calling goroutine, placed on a bounded queue and written by one goroutine
// that owns the active file. When the queue is full, producers block until
// the writer catches up.
//
// # Quick Start
//
//	sink, err := filelog.New(filelog.Config{
//		Name:     "orders",
//		Folder:   "/var/log/orders",
//		MaxBytes: 50 * 1024 * 1024,
//		MaxCount: 10,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer sink.Close()
//
//	logger := sink.Logger("Orders.Api")
//	logger.Info("order accepted")
//	logger.LogEvent(filelog.LevelWarning, 1001, "stock low")
//	logger.Exception(err, "payment failed")
//
// # File Slots
//
// Records go to {Folder}/{Name}_{i}.log for i in [0, MaxCount). On the first
// write the sink resumes where a previous run left off: it picks the first
// missing slot, otherwise the first slot below MaxBytes that no other process
// holds, otherwise slot 0. From then on, a slot that reached MaxBytes rolls to
// the next index in round-robin order and that file is truncated.
//
// # Record Format
//
// Single-line mode writes one line per record:
//
//	2022-07-07--21.53.14|INFO|Orders.Api|order accepted
//
// Continuation lines of a multi-line message are padded with spaces to the
// header width when IndentMultiline is set. Multiline mode writes a bracketed
// header line, then the body, then a blank separator line. A Formatter in
// the configuration replaces the built-in layout entirely.
//
// # Configuration
//
// Config can be built in code or loaded with LoadConfig and LoadConfigFile
// from YAML or JSON under the "filelogger" section. Environment variables
// prefixed with FILELOGGER_ override file values, and LoadEnvFiles reads
// .env files first:
//
//	filelogger:
//	  name: orders
//	  folder: /var/log/orders
//	  max_bytes: 50MB
//	  max_count: 10
//	  min_level: information
//
// # Integrations
//
// NewZapCore and NewSlogHandler route zap and log/slog records through a sink.
// NewCollector exposes Stats as Prometheus metrics.
//
// # Error Handling
//
// Configuration errors are returned by New. Runtime file errors never reach
// producers: they are reported through Config.ErrorCallback with an operation
// name such as "file_open", "rotation" or "write".
//
// # Thread Safety
//
// Sink and Logger are safe for concurrent use. Records from a single
// goroutine are written in the order they were logged.
package filelog
