package report

import "time"

// A Record is the final observation of one node: its identity, its terminal
// outcome, and the counters its lifecycle accumulated.
type Record struct {
	ID                  uint32
	Moniker             string
	PubKeyHex           string
	State               string
	Status              string
	EntriesGenerated    int
	GroupsJoined        int
	CycleCount          int
	ConnectionFailures  int
	SelectionRetries    int
	StakingAmount       float64
	RelayRequestTime    float64
	RelayEntryWatchTime float64
	Created             time.Time
}
