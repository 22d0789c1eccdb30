package authz

// Page keys assignable to roles. Closed set: keys outside this list are
// silently dropped on write so stale clients cannot persist junk grants.
const (
	PageDashboard     = "dashboard"
	PageStudents      = "students"
	PageRfid          = "rfid"
	PageScanner       = "scanner"
	PageAttendance    = "attendance"
	PageSchedule      = "schedule"
	PageNotifications = "notifications"
	PageUsers         = "users"
	PageRoles         = "roles"
	PageEnroll        = "enroll"
)

var PageKeys = []string{
	PageDashboard,
	PageStudents,
	PageRfid,
	PageScanner,
	PageAttendance,
	PageSchedule,
	PageNotifications,
	PageUsers,
	PageRoles,
	PageEnroll,
}

var pageKeySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(PageKeys))
	for _, k := range PageKeys {
		m[k] = struct{}{}
	}
	return m
}()

func IsPageKey(key string) bool {
	_, ok := pageKeySet[key]
	return ok
}

// FilterPageKeys keeps only known page keys, preserving order and removing
// duplicates. Unknown keys are dropped without error.
func FilterPageKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if !IsPageKey(k) {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
