package lp

import (
	apperrors "github.com/dandxy89/lp-parser-rs/pkg/errors"
)

// Mutation operations. All of them resolve entities by name, return a
// NotFoundError for missing names, and keep the problem internally
// consistent: renames and removals of a variable cascade into every
// expression and SOS weight list that references it.

// UpdateObjectiveCoefficient sets the coefficient of variable inside the
// named objective. An existing term is overwritten in place; a new
// variable is appended and registered in the variable table.
func (p *Problem) UpdateObjectiveCoefficient(objective, variable string, value float64) error {
	i, ok := p.objIndex[objective]
	if !ok {
		return &NotFoundError{Kind: "objective", Name: objective}
	}
	p.ensureVariable(variable)
	p.objectives[i].Expr.Set(variable, value)
	return nil
}

// RenameObjective renames an objective, keeping its position. The new
// name must not already be taken.
func (p *Problem) RenameObjective(old, new string) error {
	i, ok := p.objIndex[old]
	if !ok {
		return &NotFoundError{Kind: "objective", Name: old}
	}
	if old == new {
		return nil
	}
	if _, taken := p.objIndex[new]; taken {
		return apperrors.New(apperrors.ErrCodeValidation, "objective %q already exists", new)
	}
	p.objectives[i].Name = new
	delete(p.objIndex, old)
	p.objIndex[new] = i
	return nil
}

// RemoveObjective deletes an objective, preserving the order of the rest.
func (p *Problem) RemoveObjective(name string) error {
	i, ok := p.objIndex[name]
	if !ok {
		return &NotFoundError{Kind: "objective", Name: name}
	}
	p.objectives = append(p.objectives[:i], p.objectives[i+1:]...)
	delete(p.objIndex, name)
	for j := i; j < len(p.objectives); j++ {
		p.objIndex[p.objectives[j].Name] = j
	}
	return nil
}

// UpdateConstraintCoefficient sets the coefficient of variable inside
// the named standard constraint.
func (p *Problem) UpdateConstraintCoefficient(constraint, variable string, value float64) error {
	i, ok := p.conIndex[constraint]
	if !ok {
		return &NotFoundError{Kind: "constraint", Name: constraint}
	}
	c := &p.constraints[i]
	if c.Kind != ConstraintStandard {
		return apperrors.New(apperrors.ErrCodeValidation, "constraint %q is an SOS constraint and has no coefficients", constraint)
	}
	p.ensureVariable(variable)
	c.Expr.Set(variable, value)
	return nil
}

// UpdateConstraintRHS sets the right-hand side of the named standard
// constraint.
func (p *Problem) UpdateConstraintRHS(constraint string, value float64) error {
	i, ok := p.conIndex[constraint]
	if !ok {
		return &NotFoundError{Kind: "constraint", Name: constraint}
	}
	c := &p.constraints[i]
	if c.Kind != ConstraintStandard {
		return apperrors.New(apperrors.ErrCodeValidation, "constraint %q is an SOS constraint and has no right-hand side", constraint)
	}
	c.RHS = value
	return nil
}

// UpdateConstraintOperator sets the relational operator of the named
// standard constraint.
func (p *Problem) UpdateConstraintOperator(constraint string, op RelOp) error {
	i, ok := p.conIndex[constraint]
	if !ok {
		return &NotFoundError{Kind: "constraint", Name: constraint}
	}
	c := &p.constraints[i]
	if c.Kind != ConstraintStandard {
		return apperrors.New(apperrors.ErrCodeValidation, "constraint %q is an SOS constraint and has no operator", constraint)
	}
	c.Op = op
	return nil
}

// RenameConstraint renames a constraint of either kind, keeping its
// position. The new name must not already be taken.
func (p *Problem) RenameConstraint(old, new string) error {
	i, ok := p.conIndex[old]
	if !ok {
		return &NotFoundError{Kind: "constraint", Name: old}
	}
	if old == new {
		return nil
	}
	if _, taken := p.conIndex[new]; taken {
		return apperrors.New(apperrors.ErrCodeValidation, "constraint %q already exists", new)
	}
	p.constraints[i].Name = new
	delete(p.conIndex, old)
	p.conIndex[new] = i
	return nil
}

// RemoveConstraint deletes a constraint, preserving the order of the rest.
func (p *Problem) RemoveConstraint(name string) error {
	i, ok := p.conIndex[name]
	if !ok {
		return &NotFoundError{Kind: "constraint", Name: name}
	}
	p.constraints = append(p.constraints[:i], p.constraints[i+1:]...)
	delete(p.conIndex, name)
	for j := i; j < len(p.constraints); j++ {
		p.conIndex[p.constraints[j].Name] = j
	}
	return nil
}

// RenameVariable renames a variable and rewrites every reference to it:
// objective terms, constraint terms, and SOS weights. The new name must
// not collide with an existing variable.
func (p *Problem) RenameVariable(old, new string) error {
	i, ok := p.varIndex[old]
	if !ok {
		return &NotFoundError{Kind: "variable", Name: old}
	}
	if old == new {
		return nil
	}
	if _, taken := p.varIndex[new]; taken {
		return apperrors.New(apperrors.ErrCodeValidation, "variable %q already exists", new)
	}
	p.variables[i].Name = new
	delete(p.varIndex, old)
	p.varIndex[new] = i

	for j := range p.objectives {
		p.objectives[j].Expr.Rename(old, new)
	}
	for j := range p.constraints {
		c := &p.constraints[j]
		if c.Expr != nil {
			c.Expr.Rename(old, new)
		}
		for k := range c.Weights {
			if c.Weights[k].Variable == old {
				c.Weights[k].Variable = new
			}
		}
	}
	return nil
}

// RemoveVariable deletes a variable from the table and removes every
// term and SOS weight that references it. Expressions left empty stay
// in place.
func (p *Problem) RemoveVariable(name string) error {
	i, ok := p.varIndex[name]
	if !ok {
		return &NotFoundError{Kind: "variable", Name: name}
	}
	p.variables = append(p.variables[:i], p.variables[i+1:]...)
	delete(p.varIndex, name)
	for j := i; j < len(p.variables); j++ {
		p.varIndex[p.variables[j].Name] = j
	}

	for j := range p.objectives {
		p.objectives[j].Expr.Remove(name)
	}
	for j := range p.constraints {
		c := &p.constraints[j]
		if c.Expr != nil {
			c.Expr.Remove(name)
		}
		if len(c.Weights) > 0 {
			kept := c.Weights[:0]
			for _, w := range c.Weights {
				if w.Variable != name {
					kept = append(kept, w)
				}
			}
			c.Weights = kept
		}
	}
	return nil
}

// UpdateVariableType changes a variable's kind. Kind-default bounds
// apply unless the variable carries explicit bounds.
func (p *Problem) UpdateVariableType(name string, kind VarKind) error {
	if _, ok := p.varIndex[name]; !ok {
		return &NotFoundError{Kind: "variable", Name: name}
	}
	p.applyKind(name, kind)
	return nil
}

// SetVariableBounds sets explicit bounds on a variable. Explicit bounds
// survive later kind changes.
func (p *Problem) SetVariableBounds(name string, lower, upper float64) error {
	i, ok := p.varIndex[name]
	if !ok {
		return &NotFoundError{Kind: "variable", Name: name}
	}
	v := &p.variables[i]
	v.Lower = lower
	v.Upper = upper
	v.BoundsSet = true
	return nil
}
