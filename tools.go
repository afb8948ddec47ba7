//go:build tools
// +build tools

package tools

// Development tools pinned in go.mod: lint, migrations CLI, swagger
// generator (swag init -g cmd/app/main.go) and mock generator.

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/pressly/goose/v3/cmd/goose"
	_ "github.com/swaggo/swag/cmd/swag"
	_ "github.com/vektra/mockery/v2"
)
