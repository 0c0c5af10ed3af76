package main

import (
	"vibmerge/internal/cli"
	"vibmerge/internal/decomp"
	"vibmerge/internal/export"
	"vibmerge/internal/match"
)

func parsePolicyFlag(raw string) (match.UnmatchedPolicy, error) {
	p, err := match.ParseUnmatchedPolicy(raw)
	if err != nil {
		return "", &cli.InvocationError{ExitCode: cli.ExitInvalidInvocation, Message: err.Error()}
	}
	return p, nil
}

func parseFormatFlag(raw string) (export.Format, error) {
	f, err := export.ParseFormat(raw)
	if err != nil {
		return "", &cli.InvocationError{ExitCode: cli.ExitInvalidInvocation, Message: err.Error()}
	}
	return f, nil
}

func newDecompTool(command, script string) decomp.Tool {
	return decomp.Tool{Command: command, Script: script}
}
