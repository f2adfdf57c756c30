package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"mermaidlint/internal/driver"
	"mermaidlint/internal/ui"
)

// shouldUseTUI: в auto прогресс рисуем только в терминале и только для
// нескольких файлов.
func shouldUseTUI(mode string, files int) bool {
	if mode != "auto" {
		return mode == "on"
	}
	return files > 1 && isTerminal(os.Stdout)
}

type lintOutcome struct {
	batch *driver.Batch
	err   error
}

func runLintWithUI(ctx context.Context, title string, paths []string, opts driver.Options) (*driver.Batch, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan lintOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		batch, err := driver.LintFiles(ctx, paths, optsCopy)
		outcomeCh <- lintOutcome{batch: batch, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// UI мог выйти раньше (ctrl+c), не даём драйверу заблокироваться
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.batch, uiErr
	}
	return outcome.batch, outcome.err
}
