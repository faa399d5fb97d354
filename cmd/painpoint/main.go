package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/painpoint-go/internal/domain"
	"github.com/doeshing/painpoint-go/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()
	opts := cli.Options{
		Verbose:    isVerbose(),
		LogFormat:  os.Getenv("PAINPOINT_LOG_FORMAT"),
		ConfigPath: os.Getenv("PAINPOINT_CONFIG"),
	}

	root, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", userMessage(err))
		os.Exit(1)
	}
}

// userMessage shows a failed submission the way the form would: its message only.
func userMessage(err error) string {
	var qerr *domain.QueryError
	if errors.As(err, &qerr) {
		return qerr.Message
	}
	return err.Error()
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("PAINPOINT_DEBUG"), "1") || strings.EqualFold(os.Getenv("PAINPOINT_DEBUG"), "true")
}
