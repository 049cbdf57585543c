package rostergen

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"sort"
	"time"

	"github.com/fobe-ops/roster/pkg/core/model"
)

// candidateKey holds every comparator input for one candidate, computed
// once before sorting. The comparison order depends on the slot's role; see
// orderCandidates.
type candidateKey struct {
	// Ceiling pressure. Candidates who would stay under their weekly max
	// always rank ahead of those forced into overtime; among the forced,
	// the smallest excess wins and higher tiers absorb it first.
	needsOvertime  bool
	overtimeHours  float64
	tierRank       int
	offStreak      int     // trailing unworked open days this week, 0 unless >= 2
	continuity     int     // +1 continues a block, -1 reopens after an isolated gap
	rotation       float64 // leader pair rotation distance, lower is better
	historicalLoad float64 // float roles: lookback hours plus hours assigned this run
	weekHours      float64
	reroll         uint64
	name           string
}

func (s *scheduleState) orderCandidates(cands []model.Employee, req slotRequest) {
	if len(cands) < 2 {
		return
	}
	wk := s.cal.weekOf(dateKey(req.date))
	keys := make(map[string]candidateKey, len(cands))
	for _, e := range cands {
		keys[e.ID] = s.candidateKey(e, req, wk)
	}
	floor := req.role == model.RoleStoreClerk
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := keys[cands[i].ID], keys[cands[j].ID]
		if floor {
			return compareFloor(a, b) < 0
		}
		return compareRotating(a, b) < 0
	})
}

// compareFloor ranks Store Clerk candidates: ceiling pressure, then
// long-run load balance, then the continuity shape of the current week.
func compareFloor(a, b candidateKey) int {
	if c := compareCeiling(a, b); c != 0 {
		return c
	}
	if c := cmpFloat(a.historicalLoad, b.historicalLoad); c != 0 {
		return c
	}
	if c := cmpInt(b.offStreak, a.offStreak); c != 0 {
		return c
	}
	if c := cmpInt(b.continuity, a.continuity); c != 0 {
		return c
	}
	return compareTail(a, b)
}

// compareRotating ranks manager, leader and captain candidates: week shape
// first so blocks of work and rest stay contiguous, then ceiling pressure,
// then the leader pair rotation distance.
func compareRotating(a, b candidateKey) int {
	if c := cmpInt(b.offStreak, a.offStreak); c != 0 {
		return c
	}
	if c := cmpInt(b.continuity, a.continuity); c != 0 {
		return c
	}
	if c := compareCeiling(a, b); c != 0 {
		return c
	}
	if c := cmpFloat(a.rotation, b.rotation); c != 0 {
		return c
	}
	return compareTail(a, b)
}

func compareCeiling(a, b candidateKey) int {
	if a.needsOvertime != b.needsOvertime {
		if a.needsOvertime {
			return 1
		}
		return -1
	}
	if a.needsOvertime {
		if c := cmpFloat(a.overtimeHours, b.overtimeHours); c != 0 {
			return c
		}
		return cmpInt(b.tierRank, a.tierRank)
	}
	return cmpInt(a.tierRank, b.tierRank)
}

func compareTail(a, b candidateKey) int {
	if c := cmpFloat(a.weekHours, b.weekHours); c != 0 {
		return c
	}
	if a.reroll != b.reroll {
		if a.reroll < b.reroll {
			return -1
		}
		return 1
	}
	if a.name != b.name {
		if a.name < b.name {
			return -1
		}
		return 1
	}
	return 0
}

func (s *scheduleState) candidateKey(e model.Employee, req slotRequest, wk int) candidateKey {
	key := candidateKey{
		tierRank: e.PriorityTier.Rank(),
		reroll:   rerollScore(s.req.Options.RerollToken, e.ID),
		name:     e.Name,
	}
	if wk >= 0 {
		key.weekHours = s.weekHours[wk][e.ID]
		span := windowSpanHours(req.window.Start, req.window.End)
		add := span - s.dayHours[dateKey(req.date)][e.ID]
		if add < 0 {
			add = 0
		}
		if projected := key.weekHours + add; projected > e.MaxHoursPerWeek {
			key.needsOvertime = true
			key.overtimeHours = projected - e.MaxHoursPerWeek
		}
		key.offStreak = s.offStreak(e.ID, req.date, wk)
		key.continuity = s.continuity(e.ID, req.date, wk)
		if req.role == model.RoleTeamLeader {
			key.rotation = s.rotationDistance(e.ID, wk)
		}
		if req.role == model.RoleStoreClerk {
			key.historicalLoad = s.historicalLoad(e.ID)
		}
	}
	return key
}

// offStreak measures the trailing run of open days this week the employee
// has not worked. Streaks shorter than two score zero so a single day off
// never outranks continuity.
func (s *scheduleState) offStreak(employeeID string, d time.Time, wk int) int {
	open := s.openDaysBefore(d, wk)
	n := 0
	for i := len(open) - 1; i >= 0; i-- {
		if s.worked(employeeID, open[i]) {
			break
		}
		n++
	}
	if n < 2 {
		return 0
	}
	return n
}

// continuity scores the relationship to the previous open day this week:
// +1 when it was worked, -1 when it is an isolated gap after a worked day,
// 0 otherwise.
func (s *scheduleState) continuity(employeeID string, d time.Time, wk int) int {
	open := s.openDaysBefore(d, wk)
	if len(open) == 0 {
		return 0
	}
	if s.worked(employeeID, open[len(open)-1]) {
		return 1
	}
	if len(open) >= 2 && s.worked(employeeID, open[len(open)-2]) {
		return -1
	}
	return 0
}

func (s *scheduleState) openDaysBefore(d time.Time, wk int) []time.Time {
	var open []time.Time
	for _, day := range s.cal.weekDays(wk) {
		if !day.date.Before(d) {
			break
		}
		if day.mainOpen {
			open = append(open, day.date)
		}
	}
	return open
}

// rotationDistance scores a leader pair member by how far assigning them
// today would move the week from the desired alternation: the member with
// fewer leadership days last week should come out one day ahead.
func (s *scheduleState) rotationDistance(employeeID string, wk int) float64 {
	if !s.rotationPair {
		return 0
	}
	pref := s.preferredLeader(wk)
	if pref == nil {
		return 0
	}
	var other string
	if s.leaders[0].ID == employeeID {
		other = s.leaders[1].ID
	} else {
		other = s.leaders[0].ID
	}
	want := -1.0
	if *pref == employeeID {
		want = 1.0
	}
	diff := float64(s.leaderDays[wk][employeeID] + 1 - s.leaderDays[wk][other])
	return math.Abs(diff - want)
}

// preferredLeader picks the pair member owed the heavier week: whoever led
// fewer days the week before, from historical aggregates for week zero and
// from this run's counts afterwards. Nil when the counts tie.
func (s *scheduleState) preferredLeader(wk int) *string {
	if s.weekPrefComputed[wk] {
		return s.weekPreferredLeader[wk]
	}
	a, b := s.leaders[0].ID, s.leaders[1].ID
	var cntA, cntB int
	if wk == 0 {
		prev := dateKey(s.cal.start.AddDate(0, 0, -7))
		cntA = s.req.History.LeaderDays[model.WeekEmployee{WeekStart: prev, EmployeeID: a}]
		cntB = s.req.History.LeaderDays[model.WeekEmployee{WeekStart: prev, EmployeeID: b}]
	} else {
		cntA = s.leaderDays[wk-1][a]
		cntB = s.leaderDays[wk-1][b]
	}
	var pref *string
	switch {
	case cntA < cntB:
		pref = &a
	case cntB < cntA:
		pref = &b
	}
	s.weekPreferredLeader[wk] = pref
	s.weekPrefComputed[wk] = true
	return pref
}

// historicalLoad sums the four weeks of lookback hours before the period
// with everything assigned so far in this run. Shoulder season zeroes it so
// the short roster is balanced on its own terms.
func (s *scheduleState) historicalLoad(employeeID string) float64 {
	if s.req.Options.ShoulderSeason {
		return 0
	}
	total := 0.0
	for k := 1; k <= 4; k++ {
		ws := dateKey(s.cal.start.AddDate(0, 0, -7*k))
		total += s.req.History.WeeklyHours[model.WeekEmployee{WeekStart: ws, EmployeeID: employeeID}]
	}
	for wk := range s.weekHours {
		total += s.weekHours[wk][employeeID]
	}
	return total
}

// rerollScore derives a stable per-employee tiebreak from the reroll token.
func rerollScore(token, employeeID string) uint64 {
	sum := sha256.Sum256([]byte(token + ":" + employeeID))
	return binary.BigEndian.Uint64(sum[:8])
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
