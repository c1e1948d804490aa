package cmd

import (
	"context"

	"github.com/salmonumbrella/csvtex/internal/output"
)

func structuredOutputRequested() bool {
	return output.IsStructured(outputType)
}

func printStructured(ctx context.Context, data interface{}) error {
	if ctx == nil {
		ctx = context.Background()
	}
	printer := output.NewPrinter(stdoutFromContext(ctx), outputType)
	return printer.Print(ctx, data)
}
