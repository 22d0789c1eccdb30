package repositories

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceBuilderScopedViewerStrictEquality(t *testing.T) {
	r := &AttendanceRepository{}
	schoolID := int64(10)

	query, args, err := r.attendanceBuilder(sq.Select("COUNT(*)"), &schoolID, AttendanceListFilter{}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "s.school_id = $1")
	assert.NotContains(t, query, "IS NULL")
	assert.Equal(t, []interface{}{schoolID}, args)
}

// A viewer without a school sees only rows without one, never every school.
func TestAttendanceBuilderNilScopeSeesOnlyUnscopedRows(t *testing.T) {
	r := &AttendanceRepository{}

	query, args, err := r.attendanceBuilder(sq.Select("COUNT(*)"), nil, AttendanceListFilter{}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "s.school_id IS NULL")
	assert.Empty(t, args)
}

func TestScopeBySchool(t *testing.T) {
	schoolID := int64(7)

	query, _, err := scopeBySchool(sq.Select("1").From("student_profile").PlaceholderFormat(sq.Dollar), "school_id", &schoolID).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "school_id = $1")

	query, _, err = scopeBySchool(sq.Select("1").From("student_profile").PlaceholderFormat(sq.Dollar), "school_id", nil).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "school_id IS NULL")
}
