package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyapp/parley-client/internal/guard"
)

func TestDecisionError(t *testing.T) {
	cases := []struct {
		name     string
		decision guard.Decision
		wantErr  string
	}{
		{
			name:     "render passes",
			decision: guard.Decision{Action: guard.Render},
		},
		{
			name:     "login redirect asks for sign-in",
			decision: guard.Decision{Action: guard.Redirect, To: guard.PathLogin, From: "/topics"},
			wantErr:  "not signed in; run 'parley login' first",
		},
		{
			name:     "home redirect refuses the admin route",
			decision: guard.Decision{Action: guard.Redirect, To: guard.PathHome},
			wantErr:  "admin role required",
		},
		{
			name:     "wait refuses until the session settles",
			decision: guard.Decision{Action: guard.Wait},
			wantErr:  "session state unresolved; try again",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := decisionError(tc.decision)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.wantErr, err.Error())
		})
	}
}
