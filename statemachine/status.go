package statemachine

// Transition defines a valid status change for one of the POS entities.
type Transition struct {
	From string
	To   string
}

// Machine is an advisory state machine: the write paths consult it to log
// suspicious transitions but never reject a write, matching how the floor
// staff actually drive the statuses.
type Machine struct {
	name        string
	transitions []Transition
	allowed     map[Transition]bool
}

func New(name string, transitions []Transition) *Machine {
	m := &Machine{
		name:        name,
		transitions: transitions,
		allowed:     make(map[Transition]bool, len(transitions)),
	}
	for _, t := range transitions {
		m.allowed[t] = true
	}
	return m
}

func (m *Machine) Name() string {
	return m.name
}

// Can reports whether from -> to is in the transition table. Staying in the
// same state is always allowed.
func (m *Machine) Can(from, to string) bool {
	if from == to {
		return true
	}
	return m.allowed[Transition{From: from, To: to}]
}

// NextStates returns all states reachable from the given one, in table order.
func (m *Machine) NextStates(from string) []string {
	var nexts []string
	seen := map[string]bool{}
	for _, t := range m.transitions {
		if t.From == from && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// Tables cycle available -> occupied -> preparing -> serving -> billing and
// back; deleting an order can free a table from any occupied-family state.
var Tables = New("table", []Transition{
	{From: "available", To: "occupied"},
	{From: "occupied", To: "preparing"},
	{From: "preparing", To: "serving"},
	{From: "serving", To: "billing"},
	{From: "billing", To: "available"},
	{From: "occupied", To: "available"},
	{From: "preparing", To: "available"},
	{From: "serving", To: "available"},
})

// Orders move forward only; cancelled is reachable from any live state.
var Orders = New("order", []Transition{
	{From: "pending", To: "preparing"},
	{From: "preparing", To: "ready"},
	{From: "ready", To: "completed"},
	{From: "pending", To: "cancelled"},
	{From: "preparing", To: "cancelled"},
	{From: "ready", To: "cancelled"},
})

// KOTs follow the kitchen flow; cancelled is reachable from any live state.
var KOTs = New("kot", []Transition{
	{From: "pending", To: "preparing"},
	{From: "preparing", To: "completed"},
	{From: "pending", To: "cancelled"},
	{From: "preparing", To: "cancelled"},
})
