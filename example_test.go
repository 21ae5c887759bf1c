// example_test.go: Executable examples for godoc
//
// These examples appear in the generated documentation and are executable.
// Run with: go test -run Example

package filelog_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/agilira/filelog"
	"github.com/pkg/errors"
)

// ExampleNew demonstrates a sink with a custom record formatter.
func ExampleNew() {
	dir, err := os.MkdirTemp("", "filelog-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	sink, err := filelog.New(filelog.Config{
		Name:   "orders",
		Folder: dir,
		Formatter: func(r *filelog.Record) string {
			return r.Level().Code() + " " + r.Category() + ": " + r.Body()
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	logger := sink.Logger("Orders.Api")
	logger.Info("order accepted")
	logger.LogEvent(filelog.LevelWarning, 1001, "stock low")
	logger.Exception(errors.New("payment gateway timeout"), "")

	if err := sink.Close(); err != nil {
		log.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "orders_0.log"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(data))
	// Output:
	// INFO Orders.Api: order accepted
	// WARN Orders.Api: stock low [1001]
	// ERRR Orders.Api: payment gateway timeout
}

// ExampleLoadConfig demonstrates loading sink options from YAML.
func ExampleLoadConfig() {
	cfg, err := filelog.LoadConfig([]byte(`
filelogger:
  name: billing
  max_bytes: 10MB
  max_count: 4
  min_level: warning
`), filelog.FormatYAML)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(cfg.Name, cfg.MaxBytes, cfg.MaxCount, cfg.MinLevel)
	// Output: billing 10485760 4 Warning
}

// ExampleParseSize demonstrates human-readable size parsing.
func ExampleParseSize() {
	size, err := filelog.ParseSize("50MB")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(size)
	// Output: 52428800
}
