package lp

// Problem is the parsed LP model: sense, named objectives, constraints,
// and a variable table. All three entity collections preserve insertion
// order and are indexed by name, so lookups are O(1) and iteration is
// deterministic.
type Problem struct {
	name  string
	sense Sense

	objectives []Objective
	objIndex   map[string]int

	constraints []Constraint
	conIndex    map[string]int

	variables []Variable
	varIndex  map[string]int
}

// NewProblem returns an empty minimization problem.
func NewProblem() *Problem {
	return &Problem{
		objIndex: make(map[string]int),
		conIndex: make(map[string]int),
		varIndex: make(map[string]int),
	}
}

// Name returns the optional problem name ("" when unset).
func (p *Problem) Name() string { return p.name }

// SetName sets the problem name.
func (p *Problem) SetName(name string) { p.name = name }

// Sense returns the optimization direction.
func (p *Problem) Sense() Sense { return p.sense }

// SetSense sets the optimization direction.
func (p *Problem) SetSense(s Sense) { p.sense = s }

// ensureVariable registers name in the variable table if absent and
// returns its index. Referenced variables default to continuous.
func (p *Problem) ensureVariable(name string) int {
	if i, ok := p.varIndex[name]; ok {
		return i
	}
	p.varIndex[name] = len(p.variables)
	p.variables = append(p.variables, NewVariable(name))
	return len(p.variables) - 1
}

// AddVariable inserts or replaces a variable, preserving table position
// on replacement.
func (p *Problem) AddVariable(v Variable) {
	if i, ok := p.varIndex[v.Name]; ok {
		p.variables[i] = v
		return
	}
	p.varIndex[v.Name] = len(p.variables)
	p.variables = append(p.variables, v)
}

// AddObjective inserts or replaces an objective by name and registers
// every referenced variable.
func (p *Problem) AddObjective(o Objective) {
	o = o.Clone()
	for _, t := range o.Expr.Terms() {
		p.ensureVariable(t.Variable)
	}
	if i, ok := p.objIndex[o.Name]; ok {
		p.objectives[i] = o
		return
	}
	p.objIndex[o.Name] = len(p.objectives)
	p.objectives = append(p.objectives, o)
}

// AddConstraint inserts or replaces a constraint by name and registers
// every referenced variable, including SOS weight variables.
func (p *Problem) AddConstraint(c Constraint) {
	c = c.Clone()
	if c.Kind == ConstraintStandard && c.Expr == nil {
		c.Expr = NewExpression()
	}
	if c.Expr != nil {
		for _, t := range c.Expr.Terms() {
			p.ensureVariable(t.Variable)
		}
	}
	for _, w := range c.Weights {
		p.ensureVariable(w.Variable)
	}
	if i, ok := p.conIndex[c.Name]; ok {
		p.constraints[i] = c
		return
	}
	p.conIndex[c.Name] = len(p.constraints)
	p.constraints = append(p.constraints, c)
}

// Variable returns a copy of the named variable.
func (p *Problem) Variable(name string) (Variable, bool) {
	if i, ok := p.varIndex[name]; ok {
		return p.variables[i], true
	}
	return Variable{}, false
}

// Objective returns a deep copy of the named objective.
func (p *Problem) Objective(name string) (Objective, bool) {
	if i, ok := p.objIndex[name]; ok {
		return p.objectives[i].Clone(), true
	}
	return Objective{}, false
}

// Constraint returns a deep copy of the named constraint.
func (p *Problem) Constraint(name string) (Constraint, bool) {
	if i, ok := p.conIndex[name]; ok {
		return p.constraints[i].Clone(), true
	}
	return Constraint{}, false
}

// Variables returns the variable table in insertion order, as copies.
func (p *Problem) Variables() []Variable {
	out := make([]Variable, len(p.variables))
	copy(out, p.variables)
	return out
}

// Objectives returns the objectives in declaration order, as deep copies.
func (p *Problem) Objectives() []Objective {
	out := make([]Objective, 0, len(p.objectives))
	for _, o := range p.objectives {
		out = append(out, o.Clone())
	}
	return out
}

// Constraints returns the constraints in declaration order, as deep copies.
func (p *Problem) Constraints() []Constraint {
	out := make([]Constraint, 0, len(p.constraints))
	for _, c := range p.constraints {
		out = append(out, c.Clone())
	}
	return out
}

// VariableCount returns the size of the variable table.
func (p *Problem) VariableCount() int { return len(p.variables) }

// ConstraintCount returns the number of constraints of both kinds.
func (p *Problem) ConstraintCount() int { return len(p.constraints) }

// ObjectiveCount returns the number of objectives.
func (p *Problem) ObjectiveCount() int { return len(p.objectives) }

// Clone returns a deep copy of the problem.
func (p *Problem) Clone() *Problem {
	c := NewProblem()
	c.name = p.name
	c.sense = p.sense
	for _, v := range p.variables {
		c.AddVariable(v)
	}
	for _, o := range p.objectives {
		c.AddObjective(o)
	}
	for _, con := range p.constraints {
		c.AddConstraint(con)
	}
	return c
}
