package session

import (
	"fmt"
	"net/url"
	"strconv"
)

// DeepLink is the bootstrap context carried by a QR-code URL: enough to start
// the customer ordering flow without manual entry.
type DeepLink struct {
	Token       string
	TableNumber int
	BranchID    uint
	CompanyID   uint
	Mode        string
}

// ParseDeepLink extracts the bootstrap query parameters token, table,
// branch_id, companyId and mode from a QR URL. Missing parameters stay at
// their zero values; malformed numeric parameters are an error.
func ParseDeepLink(rawurl string) (*DeepLink, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("invalid deep link: %w", err)
	}
	q := u.Query()

	dl := &DeepLink{
		Token: q.Get("token"),
		Mode:  q.Get("mode"),
	}

	if v := q.Get("table"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid table parameter %q: %w", v, err)
		}
		dl.TableNumber = n
	}
	if v := q.Get("branch_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid branch_id parameter %q: %w", v, err)
		}
		dl.BranchID = uint(n)
	}
	if v := q.Get("companyId"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid companyId parameter %q: %w", v, err)
		}
		dl.CompanyID = uint(n)
	}

	return dl, nil
}

// Bootstrap applies a deep link to the session: the embedded token (if any)
// replaces the stored one and the branch becomes the selected branch.
func (s *Session) Bootstrap(dl *DeepLink) error {
	if dl.Token != "" {
		if err := s.SetToken(dl.Token); err != nil {
			return err
		}
	}
	if dl.BranchID != 0 {
		if err := s.SetBranch(dl.BranchID); err != nil {
			return err
		}
	}
	return nil
}
