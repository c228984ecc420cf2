package command

import (
	"context"
	"reflect"
	"testing"

	"github.com/brewsmith/brewsmith/internal/domain"
	"github.com/brewsmith/brewsmith/internal/logger"
)

func TestParseCommands(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	p := NewKeywordParser(log)
	ctx := context.Background()

	tests := []struct {
		input    string
		want     domain.CommandType
		wantArgs []string
	}{
		{"help", domain.CmdHelp, nil},
		{"?", domain.CmdHelp, nil},
		{"quit", domain.CmdQuit, nil},
		{"list", domain.CmdList, nil},
		{"ls", domain.CmdList, nil},
		{"new West Coast IPA", domain.CmdNew, []string{"West", "Coast", "IPA"}},
		{"open cascade-pale-ale", domain.CmdOpen, []string{"cascade-pale-ale"}},
		{"delete old-batch", domain.CmdDelete, []string{"old-batch"}},
		{"show", domain.CmdShow, nil},
		{"stats", domain.CmdStats, nil},
		{"batch 25", domain.CmdBatch, []string{"25"}},
		{"equip boiloff 3.5", domain.CmdEquip, []string{"boiloff", "3.5"}},

		{"grain add Pale 5 2 37", domain.CmdGrainAdd, []string{"Pale", "5", "2", "37"}},
		{"grains add Munich 0.5 9 35", domain.CmdGrainAdd, []string{"Munich", "0.5", "9", "35"}},
		{"grain remove 2", domain.CmdGrainRemove, []string{"2"}},
		{"hop add Cascade 5.5 30 boil 60", domain.CmdHopAdd, []string{"Cascade", "5.5", "30", "boil", "60"}},
		{"hop rm 1", domain.CmdHopRemove, []string{"1"}},
		{"yeast US-05 78", domain.CmdYeast, []string{"US-05", "78"}},
		{"ferm add Primary 19 10", domain.CmdFermAdd, []string{"Primary", "19", "10"}},

		{"mash preset single", domain.CmdMashPreset, []string{"single"}},
		{"mash add Sacch infusion 66 60", domain.CmdMashAdd, []string{"Sacch", "infusion", "66", "60"}},
		{"mash remove 1", domain.CmdMashRemove, []string{"1"}},
		{"mash", domain.CmdMashShow, nil},
		{"mash show", domain.CmdMashShow, nil},

		{"water source 20 3 8 12 15 40", domain.CmdWaterSource, []string{"20", "3", "8", "12", "15", "40"}},
		{"salts 6 2 0 0 0", domain.CmdSalts, []string{"6", "2", "0", "0", "0"}},
		{"water", domain.CmdWaterShow, nil},

		{"style 18B", domain.CmdStyle, []string{"18B"}},
		{"compare", domain.CmdCompare, nil},
		{"save tweaked the hop schedule", domain.CmdSave, []string{"tweaked", "the", "hop", "schedule"}},
		{"versions", domain.CmdVersions, nil},
		{"history", domain.CmdVersions, nil},
		{"restore abc123", domain.CmdRestore, []string{"abc123"}},

		{"brew", domain.CmdBrew, nil},
		{"next", domain.CmdNext, nil},
		{"done", domain.CmdNext, nil},
		{"skip", domain.CmdSkip, nil},
		{"pause", domain.CmdPause, nil},
		{"resume", domain.CmdResume, nil},
		{"start timers", domain.CmdStartTimers, nil},
		{"ready", domain.CmdStartTimers, nil},
		{"dismiss timer-step-0", domain.CmdDismissTimer, []string{"timer-step-0"}},
		{"ok", domain.CmdDismissTimer, nil},
		{"timers", domain.CmdTimers, nil},
		{"abandon", domain.CmdAbandon, nil},

		{"", domain.CmdUnknown, nil},
		{"   ", domain.CmdUnknown, nil},
		{"make me a beer", domain.CmdUnknown, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, err := p.Parse(ctx, tt.input)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if cmd.Type != tt.want {
				t.Fatalf("input %q: expected %s, got %s", tt.input, tt.want, cmd.Type)
			}
			if len(tt.wantArgs) > 0 && !reflect.DeepEqual(cmd.Args, tt.wantArgs) {
				t.Fatalf("input %q: expected args %v, got %v", tt.input, tt.wantArgs, cmd.Args)
			}
			if len(tt.wantArgs) == 0 && len(cmd.Args) != 0 {
				t.Fatalf("input %q: expected no args, got %v", tt.input, cmd.Args)
			}
		})
	}
}

func TestParseIsCaseInsensitive(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	p := NewKeywordParser(log)
	ctx := context.Background()

	for _, input := range []string{"HELP", "Grain Add Pale 5 2 37", "MASH PRESET single"} {
		cmd, err := p.Parse(ctx, input)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if cmd.Type == domain.CmdUnknown {
			t.Fatalf("input %q should not be unknown", input)
		}
	}
}
