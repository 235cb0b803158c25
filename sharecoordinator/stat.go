package sharecoordinator

type coordinatorStat struct {
	ActiveShares       int            `json:"activeShares"`
	PendingInvitations int            `json:"pendingInvitations"`
	States             map[string]int `json:"states"`
	LastError          string         `json:"lastError,omitempty"`
}

func (c *shareCoordinator) ProvideStat() any {
	var st coordinatorStat
	_ = c.exec.Do(func() {
		st = coordinatorStat{
			ActiveShares:       len(c.state.activeShares),
			PendingInvitations: len(c.state.pending),
			States:             make(map[string]int),
			LastError:          c.state.lastError,
		}
		for _, s := range c.state.statuses {
			st.States[s.State.String()]++
		}
	})
	return st
}

func (c *shareCoordinator) StatId() string {
	return "coordinator"
}

func (c *shareCoordinator) StatType() string {
	return CName
}
