// Package main writes docs/config_schema.json for editor completion of
// ptserve config files.
package main

import (
	"os"

	"github.com/yeisme/ptserve/pkg/utils/schema"
)

//go:generate go run github.com/yeisme/ptserve/cmd/schema
func main() {
	if err := os.MkdirAll("../../docs", 0755); err != nil {
		panic(err)
	}

	configSchemaFile, err := os.Create("../../docs/config_schema.json")
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = configSchemaFile.Close()
	}()

	if err := schema.GenConfigSchema(configSchemaFile); err != nil {
		panic(err)
	}
}
