// Package offchain collects news, sentiment, team, and partnership evidence
// from the project scan service.
package offchain

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/veritasproject/veritas/pkg/audit"
	"github.com/veritasproject/veritas/pkg/net"
)

// News-article counts mapped to coverage levels.
const (
	coverageMediumMin = 3
	coverageHighMin   = 10
)

// Client implements audit.OffChainCollector against the scan service.
type Client struct {
	baseURL string
	hc      *http.Client
}

func New(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), hc: hc}
}

// scanResponse mirrors the scan service project-scan payload.
type scanResponse struct {
	SocialSentiment struct {
		SentimentScore *float64 `json:"sentiment_score"`
		MentionVolume  *int64   `json:"mention_volume"`
	} `json:"social_sentiment"`
	TeamVerification struct {
		TeamMembersFound int `json:"team_members_found"`
		VerifiedMembers  int `json:"verified_members"`
	} `json:"team_verification"`
	ProjectMentions struct {
		NewsArticles []struct {
			Source string `json:"source"`
			Title  string `json:"title"`
			URL    string `json:"url"`
		} `json:"news_articles"`
		PartnershipClaims []struct {
			Claim              string `json:"claim"`
			VerificationStatus string `json:"verification_status"`
		} `json:"partnership_claims"`
	} `json:"project_mentions"`
}

// Collect runs a project scan and maps the result into evidence. The whole
// call failing is a collection error; missing sections yield partial data.
func (c *Client) Collect(ctx context.Context, name, address string) (*audit.OffChainEvidence, error) {
	if name == "" && address == "" {
		return nil, fmt.Errorf("project name or address is required")
	}

	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	if address != "" {
		q.Set("address", address)
	}

	var scan scanResponse
	u := c.baseURL + "/projects/scan?" + q.Encode()
	if err := net.GetJSON(ctx, c.hc, u, &scan); err != nil {
		return nil, fmt.Errorf("scanning project %q: %w", name, err)
	}

	return mapScan(&scan), nil
}

func mapScan(scan *scanResponse) *audit.OffChainEvidence {
	ev := &audit.OffChainEvidence{
		Sentiment:    scan.SocialSentiment.SentimentScore,
		Engagement:   scan.SocialSentiment.MentionVolume,
		TeamVerified: scan.TeamVerification.VerifiedMembers > 0,
	}

	switch n := len(scan.ProjectMentions.NewsArticles); {
	case n >= coverageHighMin:
		ev.MediaCoverage = audit.CoverageHigh
	case n >= coverageMediumMin:
		ev.MediaCoverage = audit.CoverageMedium
	case n > 0:
		ev.MediaCoverage = audit.CoverageLow
	default:
		ev.MediaCoverage = audit.CoverageNone
	}

	for _, pc := range scan.ProjectMentions.PartnershipClaims {
		claim := audit.PartnershipClaim{Name: pc.Claim}
		switch strings.ToLower(pc.VerificationStatus) {
		case "verified":
			claim.Status = audit.ClaimVerified
		case "false", "refuted":
			claim.Status = audit.ClaimFalse
		default:
			claim.Status = audit.ClaimUnverified
		}
		ev.Claims = append(ev.Claims, claim)
	}

	return ev
}
