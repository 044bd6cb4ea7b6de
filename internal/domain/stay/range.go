package stay

import (
	"fmt"
	"time"
)

// DateLayout は宿泊日付の表記フォーマット
const DateLayout = "2006-01-02"

// Range は宿泊期間を表す値オブジェクト
// 日付単位（UTC 0時に正規化）、両端を含む区間として扱う
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange は日付を正規化して宿泊期間を作成する
func NewRange(start, end time.Time) Range {
	return Range{Start: truncateToDate(start), End: truncateToDate(end)}
}

// ParseRange は "2006-01-02" 形式の文字列から宿泊期間を作成する
func ParseRange(start, end string) (Range, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return Range{}, ErrInvalidDateFormat
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return Range{}, ErrInvalidDateFormat
	}
	return NewRange(s, e), nil
}

// Validate は宿泊期間の検証を行う
func (r Range) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return ErrDatesRequired
	}
	if r.End.Before(r.Start) {
		return ErrEndBeforeStart
	}
	return nil
}

// Overlaps は2つの宿泊期間が重なるかを返す
// 判定は両端を含む: s1 <= e2 かつ e1 >= s2
func (r Range) Overlaps(other Range) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

// Nights は宿泊数を返す（同日チェックイン・チェックアウトは1泊扱い）
func (r Range) Nights() int {
	nights := int(r.End.Sub(r.Start).Hours() / 24)
	if nights < 1 {
		return 1
	}
	return nights
}

// Until はチェックインまでの残り時間を返す
func (r Range) Until(now time.Time) time.Duration {
	return r.Start.Sub(now)
}

// String は "2006-01-02/2006-01-02" 形式の文字列を返す
func (r Range) String() string {
	return fmt.Sprintf("%s/%s", r.Start.Format(DateLayout), r.End.Format(DateLayout))
}

func truncateToDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
