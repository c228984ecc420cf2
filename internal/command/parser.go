// Package command provides builder command parsing and user notification
// implementations.
package command

import (
	"context"
	"regexp"
	"strings"

	"github.com/brewsmith/brewsmith/internal/domain"
	"github.com/brewsmith/brewsmith/internal/logger"
)

// Compile-time interface check.
var _ domain.CommandParser = (*KeywordParser)(nil)

// KeywordParser matches user input to builder commands using anchored
// keyword patterns. Every pattern carries exactly one trailing capture
// group holding the argument remainder.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex *regexp.Regexp
	cmd   domain.CommandType
}

func rule(cmd domain.CommandType, keywords string) patternRule {
	return patternRule{
		regex: regexp.MustCompile(`(?i)^(?:` + keywords + `)(?:\s+(.*))?$`),
		cmd:   cmd,
	}
}

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		// Two-word forms first so "grain add" doesn't fall into a
		// single-word rule.
		rule(domain.CmdGrainAdd, `grains?\s+add`),
		rule(domain.CmdGrainRemove, `grains?\s+(?:remove|rm|del)`),
		rule(domain.CmdHopAdd, `hops?\s+add`),
		rule(domain.CmdHopRemove, `hops?\s+(?:remove|rm|del)`),
		rule(domain.CmdMashPreset, `mash\s+preset`),
		rule(domain.CmdMashAdd, `mash\s+add`),
		rule(domain.CmdMashRemove, `mash\s+(?:remove|rm|del)`),
		rule(domain.CmdMashShow, `mash(?:\s+show)?`),
		rule(domain.CmdFermAdd, `ferm(?:entation)?\s+add`),
		rule(domain.CmdWaterSource, `water\s+source`),
		rule(domain.CmdWaterShow, `water(?:\s+show)?`),
		rule(domain.CmdStartTimers, `start\s+timers?|timers?\s+start|ready`),

		rule(domain.CmdHelp, `help|h|\?`),
		rule(domain.CmdQuit, `quit|exit|q`),
		rule(domain.CmdList, `list|recipes|ls`),
		rule(domain.CmdNew, `new|create`),
		rule(domain.CmdOpen, `open|edit`),
		rule(domain.CmdDelete, `delete|rm`),
		rule(domain.CmdShow, `show|recipe`),
		rule(domain.CmdStats, `stats|numbers|calc`),
		rule(domain.CmdBatch, `batch|volume`),
		rule(domain.CmdEquip, `equip(?:ment)?`),
		rule(domain.CmdYeast, `yeast`),
		rule(domain.CmdSalts, `salts?`),
		rule(domain.CmdStyle, `style`),
		rule(domain.CmdCompare, `compare`),
		rule(domain.CmdSave, `save`),
		rule(domain.CmdVersions, `versions|history`),
		rule(domain.CmdRestore, `restore`),
		rule(domain.CmdBrew, `brew`),
		rule(domain.CmdNext, `next|done|n|advance`),
		rule(domain.CmdSkip, `skip`),
		rule(domain.CmdPause, `pause|wait`),
		rule(domain.CmdResume, `resume|unpause`),
		rule(domain.CmdDismissTimer, `dismiss|ok`),
		rule(domain.CmdTimers, `timers?`),
		rule(domain.CmdAbandon, `abandon`),
	}
	return p
}

// Parse converts an input line into a builder command. Unrecognized input
// yields CmdUnknown, never an error.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Command, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Command{Type: domain.CmdUnknown, Raw: input}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	for _, r := range p.patterns {
		m := r.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		p.log.Debug("matched command: %s", r.cmd)
		return &domain.Command{
			Type: r.cmd,
			Args: strings.Fields(m[1]),
			Raw:  trimmed,
		}, nil
	}

	p.log.Debug("no match, returning unknown command")
	return &domain.Command{Type: domain.CmdUnknown, Raw: trimmed}, nil
}
