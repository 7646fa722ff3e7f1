package model

// Roster is a read-only snapshot of the employee directory keyed by
// normalized employee number.
type Roster struct {
	byNo map[string]Employee
}

// NewRoster builds a snapshot; repeated numbers resolve last-one-wins.
func NewRoster(records []Employee) *Roster {
	r := &Roster{byNo: make(map[string]Employee, len(records))}
	for _, rec := range DedupeEmployees(records) {
		r.byNo[rec.EmployeeNo] = rec
	}
	return r
}

// Len number of employees. A nil roster is empty.
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.byNo)
}

// Lookup finds an employee by number after normalization.
func (r *Roster) Lookup(no string) (Employee, bool) {
	if r == nil {
		return Employee{}, false
	}
	no = NormalizeEmployeeNo(no)
	if no == "" {
		return Employee{}, false
	}
	e, ok := r.byNo[no]
	return e, ok
}
