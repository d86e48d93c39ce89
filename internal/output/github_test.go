// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package output

import (
	"bytes"
	"testing"
)

func TestGitHubAnnotationLine(t *testing.T) {
	tests := []struct {
		name string
		ann  Annotation
		want string
	}{
		{
			name: "error with rule",
			ann: Annotation{
				Level: "error", File: "schema/user.graphql", Line: 12, Col: 3,
				Message: `Field "emailAddress" is deprecated`, Rule: "no_deprecated",
			},
			want: `::error file=schema/user.graphql,line=12,col=3::Field "emailAddress" is deprecated [no_deprecated]`,
		},
		{
			name: "warning without rule",
			ann: Annotation{
				Level: "warning", File: "ops/feed.graphql", Line: 1, Col: 1,
				Message: "Unused fragment FeedItem",
			},
			want: `::warning file=ops/feed.graphql,line=1,col=1::Unused fragment FeedItem`,
		},
		{
			name: "unknown level collapses to notice",
			ann: Annotation{
				Level: "hint", File: "a.graphql", Line: 2, Col: 4,
				Message: "consider inlining",
			},
			want: `::notice file=a.graphql,line=2,col=4::consider inlining`,
		},
		{
			name: "message with special characters escaped",
			ann: Annotation{
				Level: "error", File: "a,b.graphql", Line: 1, Col: 1,
				Message: "line1\nline2",
			},
			want: "::error file=a%2Cb.graphql,line=1,col=1::line1%0Aline2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GitHubAnnotationLine(tt.ann)
			if got != tt.want {
				t.Errorf("GitHubAnnotationLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGitHubAnnotation_WritesNewline(t *testing.T) {
	var buf bytes.Buffer
	if err := GitHubAnnotation(&buf, Annotation{Level: "error", File: "a.graphql", Line: 1, Col: 1, Message: "boom"}); err != nil {
		t.Fatalf("GitHubAnnotation() error = %v", err)
	}
	want := "::error file=a.graphql,line=1,col=1::boom\n"
	if buf.String() != want {
		t.Errorf("GitHubAnnotation() wrote %q, want %q", buf.String(), want)
	}
}
