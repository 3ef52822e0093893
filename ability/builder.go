package ability

type Builder struct {
	rules []Rule
}

func NewBuilder() *Builder {
	return &Builder{}
}

// RuleBuilder lets the last added rule be annotated.
type RuleBuilder struct {
	b     *Builder
	index int
}

func (r RuleBuilder) Because(reason string) RuleBuilder {
	r.b.rules[r.index].Reason = reason
	return r
}

func (b *Builder) add(action Action, subject Subject, inverted bool, cond []Condition) RuleBuilder {
	rule := Rule{Action: action, Subject: subject, Inverted: inverted}
	if len(cond) > 0 {
		rule.Condition = allOf(cond)
	}
	b.rules = append(b.rules, rule)
	return RuleBuilder{b: b, index: len(b.rules) - 1}
}

func (b *Builder) Can(action Action, subject Subject, cond ...Condition) RuleBuilder {
	return b.add(action, subject, false, cond)
}

func (b *Builder) Cannot(action Action, subject Subject, cond ...Condition) RuleBuilder {
	return b.add(action, subject, true, cond)
}

func (b *Builder) Build() *Ability {
	rules := make([]Rule, len(b.rules))
	copy(rules, b.rules)
	return &Ability{rules: rules}
}

func allOf(conds []Condition) Condition {
	if len(conds) == 1 {
		return conds[0]
	}
	return func(instance any) bool {
		for _, c := range conds {
			if !c(instance) {
				return false
			}
		}
		return true
	}
}

// Owned is implemented by resources that have an author.
type Owned interface {
	OwnerID() uint
}

// Publishable is implemented by resources with a publication state.
type Publishable interface {
	Published() bool
}

// AuthorIsNot matches instances authored by someone other than userID.
func AuthorIsNot(userID uint) Condition {
	return func(instance any) bool {
		o, ok := instance.(Owned)
		return ok && o.OwnerID() != userID
	}
}

func IsPublished() Condition {
	return func(instance any) bool {
		p, ok := instance.(Publishable)
		return ok && p.Published()
	}
}
