package domain

import "fmt"

// DiscoverySource tags the channel through which a handle was found.
type DiscoverySource string

// Available discovery sources.
const (
	SourceOwner          DiscoverySource = "owner"
	SourceStargazer      DiscoverySource = "stargazer"
	SourceWatcher        DiscoverySource = "watcher"
	SourceForkOwner      DiscoverySource = "fork-owner"
	SourceIssueReporter  DiscoverySource = "issue-reporter"
	SourceIssueAssignee  DiscoverySource = "issue-assignee"
	SourceIssueCommenter DiscoverySource = "issue-commenter"
)

// DiscoveryStep is one unit of the discovery funnel. A step is backed by a
// single remote listing and may cover several sources.
type DiscoveryStep string

// Discovery steps in declaration order.
const (
	StepOwner             DiscoveryStep = "owner"
	StepStargazers        DiscoveryStep = "stargazers"
	StepWatchers          DiscoveryStep = "watchers"
	StepForkOwners        DiscoveryStep = "fork-owners"
	StepIssueParticipants DiscoveryStep = "issue-participants"
	StepIssueCommenters   DiscoveryStep = "issue-commenters"
)

// AllDiscoverySteps returns every step in declaration order.
func AllDiscoverySteps() []DiscoveryStep {
	return []DiscoveryStep{
		StepOwner,
		StepStargazers,
		StepWatchers,
		StepForkOwners,
		StepIssueParticipants,
		StepIssueCommenters,
	}
}

// Sources returns the discovery sources a step contributes.
func (s DiscoveryStep) Sources() []DiscoverySource {
	switch s {
	case StepOwner:
		return []DiscoverySource{SourceOwner}
	case StepStargazers:
		return []DiscoverySource{SourceStargazer}
	case StepWatchers:
		return []DiscoverySource{SourceWatcher}
	case StepForkOwners:
		return []DiscoverySource{SourceForkOwner}
	case StepIssueParticipants:
		return []DiscoverySource{SourceIssueReporter, SourceIssueAssignee}
	case StepIssueCommenters:
		return []DiscoverySource{SourceIssueCommenter}
	default:
		return nil
	}
}

// Label returns the human-readable plural used in progress output.
func (s DiscoveryStep) Label() string {
	switch s {
	case StepOwner:
		return "owner"
	case StepStargazers:
		return "stargazer(s)"
	case StepWatchers:
		return "watcher(s)"
	case StepForkOwners:
		return "fork owner(s)"
	case StepIssueParticipants:
		return "issue reporter(s) and assignee(s)"
	case StepIssueCommenters:
		return "issue commenter(s)"
	default:
		return string(s)
	}
}

// CacheKey returns the cache key for this step's result on a repository.
func (s DiscoveryStep) CacheKey(ref RepositoryRef) string {
	return ref.CacheKey(string(s))
}

// DiscoveryYield records what a single step contributed.
type DiscoveryYield struct {
	// Step is the discovery step.
	Step DiscoveryStep

	// TotalFound is the number of handles the step returned,
	// after the step's own deduplication where it applies.
	TotalFound int

	// NewlyAdded is the growth of the merged set caused by this step.
	NewlyAdded int
}

// OwnerMode controls where the repository owner enters the funnel.
type OwnerMode string

// Available owner modes.
const (
	// OwnerAsStep runs the owner as the first discovery step, counted in yields.
	OwnerAsStep OwnerMode = "step"

	// OwnerAppended adds the owner after every other step, outside yield reporting.
	OwnerAppended OwnerMode = "append"
)

// ParseOwnerMode parses an owner mode. An empty string selects OwnerAsStep.
func ParseOwnerMode(s string) (OwnerMode, error) {
	switch OwnerMode(s) {
	case "", OwnerAsStep:
		return OwnerAsStep, nil
	case OwnerAppended:
		return OwnerAppended, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOwnerMode, s)
	}
}

// UserSet is a set of handles that remembers first-insertion order.
// The zero value is not usable; create one with NewUserSet.
type UserSet struct {
	order   []string
	members map[string]struct{}
}

// NewUserSet creates an empty set.
func NewUserSet() *UserSet {
	return &UserSet{members: make(map[string]struct{})}
}

// Add inserts a handle and reports whether it was new.
func (s *UserSet) Add(handle string) bool {
	if _, ok := s.members[handle]; ok {
		return false
	}
	s.members[handle] = struct{}{}
	s.order = append(s.order, handle)
	return true
}

// Merge inserts every handle and returns how many were new.
func (s *UserSet) Merge(handles []string) int {
	added := 0
	for _, h := range handles {
		if s.Add(h) {
			added++
		}
	}
	return added
}

// Contains reports whether the handle is present.
func (s *UserSet) Contains(handle string) bool {
	_, ok := s.members[handle]
	return ok
}

// Len returns the number of distinct handles.
func (s *UserSet) Len() int {
	return len(s.order)
}

// Handles returns the handles in first-insertion order.
func (s *UserSet) Handles() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Discovery is the aggregator output for one repository.
type Discovery struct {
	Users  *UserSet
	Yields []DiscoveryYield
}

// Unique returns handles with duplicates removed, keeping first occurrence order.
func Unique(handles []string) []string {
	set := NewUserSet()
	set.Merge(handles)
	return set.Handles()
}
