package linker

import (
	"context"

	"github.com/ai-rules-labs/ai-rules/internal/commands"
	"github.com/ai-rules-labs/ai-rules/internal/mcp"
	"github.com/ai-rules-labs/ai-rules/internal/rule"
	"github.com/ai-rules-labs/ai-rules/internal/skills"
)

// Problem is one source file that failed validation.
type Problem struct {
	Path string
	Err  error
}

// ValidationReport summarizes a validate run.
type ValidationReport struct {
	Dirs     int
	Rules    int
	MCP      int
	Commands int
	Skills   int
	Problems []Problem
}

// OK reports whether no problem was found.
func (r *ValidationReport) OK() bool {
	return len(r.Problems) == 0
}

// Validate parses every rule document and MCP source of each managed
// directory without writing anything. Unlike Generate it does not stop at
// the first bad file.
func Validate(ctx context.Context, opts Options) (*ValidationReport, error) {
	report := &ValidationReport{}
	err := walkManaged(ctx, opts, func(dir string) error {
		report.Dirs++

		files, err := rule.SourceFiles(dir)
		if err != nil {
			return err
		}
		symlinkMode := rule.IsSymlinkMode(dir)
		for _, file := range files {
			if symlinkMode {
				report.Rules++
				continue
			}
			if _, err := rule.ParseFile(file); err != nil {
				report.Problems = append(report.Problems, Problem{Path: file, Err: err})
				continue
			}
			report.Rules++
		}

		if _, found, err := mcp.ReadSource(dir); err != nil {
			report.Problems = append(report.Problems, Problem{Path: mcp.SourcePath(dir), Err: err})
		} else if found {
			report.MCP++
		}

		cmds, err := commands.Find(dir)
		if err != nil {
			return err
		}
		report.Commands += len(cmds)

		folders, err := skills.Find(dir)
		if err != nil {
			return err
		}
		report.Skills += len(folders)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
