// Package ability evaluates what a caller may do with a kind of resource, or with
// one particular instance of it.
//
// An Ability is an ordered list of rules. A rule either grants (can) or denies
// (cannot) an action on a subject, optionally narrowed by a condition evaluated
// against the instance. Rules are read from the last one to the first and the
// first rule that matches decides, so a later cannot narrows an earlier can.
package ability

import "fmt"

type Action string

const (
	Manage Action = "manage"
	Create Action = "create"
	Read   Action = "read"
	Update Action = "update"
	Delete Action = "delete"
)

type Subject string

const (
	All      Subject = "all"
	User     Subject = "User"
	Post     Subject = "Post"
	Comment  Subject = "Comment"
	Category Subject = "Category"
	Tag      Subject = "Tag"
)

// Condition reports whether a rule applies to a concrete instance.
type Condition func(instance any) bool

type Rule struct {
	Action    Action
	Subject   Subject
	Condition Condition
	Inverted  bool
	Reason    string
}

func (r Rule) matches(action Action, subject Subject, instance any) bool {
	if r.Action != Manage && r.Action != action {
		return false
	}
	if r.Subject != All && r.Subject != subject {
		return false
	}
	if r.Condition == nil {
		return true
	}
	// Checked against the kind only: a conditional grant may apply to some
	// instance, a conditional denial cannot be assumed to.
	if instance == nil {
		return !r.Inverted
	}
	return r.Condition(instance)
}

// ForbiddenError is returned by Check when an action is not permitted.
type ForbiddenError struct {
	Action  Action
	Subject Subject
	Reason  string
}

func (e *ForbiddenError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("Cannot execute %q on %q", e.Action, e.Subject)
}

type Ability struct {
	rules []Rule
}

func (a *Ability) Rules() []Rule {
	out := make([]Rule, len(a.rules))
	copy(out, a.rules)
	return out
}

// relevant returns the deciding rule, or nil when nothing matches.
func (a *Ability) relevant(action Action, subject Subject, instance any) *Rule {
	for i := len(a.rules) - 1; i >= 0; i-- {
		if a.rules[i].matches(action, subject, instance) {
			return &a.rules[i]
		}
	}
	return nil
}

// Can reports whether action is allowed on subject. instance may be nil to ask
// about the subject kind as a whole.
func (a *Ability) Can(action Action, subject Subject, instance any) bool {
	rule := a.relevant(action, subject, instance)
	return rule != nil && !rule.Inverted
}

func (a *Ability) Cannot(action Action, subject Subject, instance any) bool {
	return !a.Can(action, subject, instance)
}

// Check returns a *ForbiddenError carrying the deny reason when the action is not
// allowed.
func (a *Ability) Check(action Action, subject Subject, instance any) error {
	rule := a.relevant(action, subject, instance)
	if rule != nil && !rule.Inverted {
		return nil
	}
	err := &ForbiddenError{Action: action, Subject: subject}
	if rule != nil {
		err.Reason = rule.Reason
	}
	return err
}
