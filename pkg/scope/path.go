package scope

// Incident is one of the three observable control-flow events spec
// the PathAnalyser tracks ("Incident (path analysis)").
type Incident int

const (
	IncidentReturned Incident = iota
	IncidentSuperCalled
	IncidentUsedSelf
	numIncidents
)

// branchState records, for one branch under analysis, which incidents
// have certainly occurred on it so far.
type branchState [numIncidents]bool

// PathAnalyser is a small state machine: "certainly/
// potentially" incident tracking across if/else-if/else chains and
// uncertain (no-else) conditionals.
//
// Branches collected by a run of BeginBranch/EndBranch pairs
// accumulate on an internal pending list; EndMutualExclusiveBranches
// or EndUncertainBranches consumes and clears that whole list. This
// keeps every branchState value inside pkg/scope — pkg/sema never
// needs to name or hold the (intentionally unexported) type itself,
// only to bracket a run of branches with Begin/End calls.
type PathAnalyser struct {
	certain   branchState // true on every path examined so far
	potential branchState // true on at least one path examined so far

	stack   []branchState // one entry per currently-open begin_branch
	pending []branchState // branches closed since the last merge
}

// NewPathAnalyser builds an analyser with nothing yet certain or
// potential.
func NewPathAnalyser() *PathAnalyser {
	return &PathAnalyser{}
}

// Record marks an incident as having occurred on the branch currently
// being analysed (or, with no open branch, on the main path).
func (p *PathAnalyser) Record(i Incident) {
	if len(p.stack) == 0 {
		p.certain[i] = true
		p.potential[i] = true
		return
	}
	p.stack[len(p.stack)-1][i] = true
}

// BeginBranch opens a new branch frame (an if/else-if/else arm, or a
// loop body analysed as uncertain).
func (p *PathAnalyser) BeginBranch() {
	p.stack = append(p.stack, branchState{})
}

// EndBranch closes the innermost branch frame and appends it to the
// pending list consumed by the next merge call.
func (p *PathAnalyser) EndBranch() {
	n := len(p.stack) - 1
	p.pending = append(p.pending, p.stack[n])
	p.stack = p.stack[:n]
}

// EndMutualExclusiveBranches merges every branch accumulated since the
// last merge, for a set known to be exhaustive and mutually exclusive
// (an if/else-if chain with a final else): an incident becomes certain
// only if every branch recorded it, and potential if any branch did
// (the PathAnalyser).
func (p *PathAnalyser) EndMutualExclusiveBranches() {
	branches := p.pending
	p.pending = nil
	if len(branches) == 0 {
		return
	}
	allCertain := branchState{}
	for i := range allCertain {
		allCertain[i] = true
	}
	anyPotential := branchState{}
	for _, b := range branches {
		for i := range b {
			if !b[i] {
				allCertain[i] = false
			}
			if b[i] {
				anyPotential[i] = true
			}
		}
	}
	for i := range allCertain {
		if allCertain[i] {
			p.certain[i] = true
		}
		if anyPotential[i] {
			p.potential[i] = true
		}
	}
}

// EndUncertainBranches merges every branch accumulated since the last
// merge for a set that might not all execute (a conditional with no
// else, or a loop body that might run zero times): nothing new becomes
// certain, only potential.
func (p *PathAnalyser) EndUncertainBranches() {
	branches := p.pending
	p.pending = nil
	for _, b := range branches {
		for i := range b {
			if b[i] {
				p.potential[i] = true
			}
		}
	}
}

// Certainly reports whether an incident is guaranteed on every path
// examined so far.
func (p *PathAnalyser) Certainly(i Incident) bool { return p.certain[i] }

// Potentially reports whether an incident has occurred on at least one
// path examined so far.
func (p *PathAnalyser) Potentially(i Incident) bool { return p.potential[i] }
