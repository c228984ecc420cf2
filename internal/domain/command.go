package domain

// CommandType classifies what the user wants the builder to do.
type CommandType int

const (
	CmdUnknown CommandType = iota
	CmdHelp
	CmdQuit
	CmdList
	CmdNew
	CmdOpen
	CmdDelete
	CmdShow
	CmdStats
	CmdBatch
	CmdEquip
	CmdGrainAdd
	CmdGrainRemove
	CmdHopAdd
	CmdHopRemove
	CmdYeast
	CmdFermAdd
	CmdMashPreset
	CmdMashAdd
	CmdMashRemove
	CmdMashShow
	CmdWaterSource
	CmdSalts
	CmdWaterShow
	CmdStyle
	CmdCompare
	CmdSave
	CmdVersions
	CmdRestore
	CmdBrew
	CmdNext
	CmdSkip
	CmdPause
	CmdResume
	CmdStartTimers
	CmdDismissTimer
	CmdTimers
	CmdAbandon
)

// String returns a human-readable command type.
func (c CommandType) String() string {
	switch c {
	case CmdHelp:
		return "help"
	case CmdQuit:
		return "quit"
	case CmdList:
		return "list"
	case CmdNew:
		return "new"
	case CmdOpen:
		return "open"
	case CmdDelete:
		return "delete"
	case CmdShow:
		return "show"
	case CmdStats:
		return "stats"
	case CmdBatch:
		return "batch"
	case CmdEquip:
		return "equip"
	case CmdGrainAdd:
		return "grain_add"
	case CmdGrainRemove:
		return "grain_remove"
	case CmdHopAdd:
		return "hop_add"
	case CmdHopRemove:
		return "hop_remove"
	case CmdYeast:
		return "yeast"
	case CmdFermAdd:
		return "ferm_add"
	case CmdMashPreset:
		return "mash_preset"
	case CmdMashAdd:
		return "mash_add"
	case CmdMashRemove:
		return "mash_remove"
	case CmdMashShow:
		return "mash_show"
	case CmdWaterSource:
		return "water_source"
	case CmdSalts:
		return "salts"
	case CmdWaterShow:
		return "water_show"
	case CmdStyle:
		return "style"
	case CmdCompare:
		return "compare"
	case CmdSave:
		return "save"
	case CmdVersions:
		return "versions"
	case CmdRestore:
		return "restore"
	case CmdBrew:
		return "brew"
	case CmdNext:
		return "next"
	case CmdSkip:
		return "skip"
	case CmdPause:
		return "pause"
	case CmdResume:
		return "resume"
	case CmdStartTimers:
		return "start_timers"
	case CmdDismissTimer:
		return "dismiss_timer"
	case CmdTimers:
		return "timers"
	case CmdAbandon:
		return "abandon"
	default:
		return "unknown"
	}
}

// Command represents a parsed builder command.
type Command struct {
	Type CommandType
	Args []string // positional arguments after the command word(s)
	Raw  string   // the original input line
}
