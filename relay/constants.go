package relay

// Flag bits select which relay targets receive a given StatusLine, the
// way rbc's Flag* constants gate RBC message delivery by category.
const (
	FlagPosition    = 1
	FlagReached     = 2
	FlagDiagnostics = 4
	FlagYaw         = 8
	FlagAll         = FlagPosition | FlagReached | FlagDiagnostics | FlagYaw
)
