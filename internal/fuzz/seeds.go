package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// inlineSeeds cover the preamble forms and every grammar family.
var inlineSeeds = []string{
	"",
	"graph TD\nA-->B",
	"graph TD\r\nA-->\r\n",
	"flowchart LR\nA[Start] -->|go| B((End))\nsubgraph s1 [Group]\nC\nend",
	"---\ntitle: T\n---\n%%{init: {\"theme\": \"dark\"}}%%\ngraph TD\nA",
	"---\ntitle: [unclosed\n---\npie\n\"a\": 1",
	"---\nnever closed\ngraph TD",
	"%%{wrap}%%\npie showData\ntitle Pets\n\"Dogs\" : 3\n\"Cats\" : -1",
	"pie\n\"x\": many",
	"mindmap\n  root((a))\n    (b\n",
	"sequenceDiagram\nA->>B: {open",
	"%% only a comment",
	"\ufeffgraph TD\nA",
	"graph TD\nA[\"quoted\"]---B{<b>tag</b>}",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.mmd файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".mmd" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) string {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return string(input)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input string, maxLen int) string {
	if len(input) <= maxLen {
		return input
	}
	return input[:maxLen] + "..."
}
