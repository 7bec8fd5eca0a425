package pageloader

import "testing"

func pl(token string, reason LoadReason) *pipeline[string, int] {
	return &pipeline[string, int]{desc: LoadDescription[string]{Token: token, Reason: reason}}
}

func TestDecideAdmission(t *testing.T) {
	current := pl("p1", ReasonInitialPage)
	pending := []*pipeline[string, int]{
		pl("p2", ReasonNextPage),
		pl("p3", ReasonNextPage),
	}

	tests := []struct {
		name     string
		behavior ConcurrentLoadBehavior
		desc     LoadDescription[string]
		current  *pipeline[string, int]
		pending  []*pipeline[string, int]
		want     admission
	}{
		{
			name:     "queue always admits",
			behavior: BehaviorQueue,
			desc:     LoadDescription[string]{Token: "p2", Reason: ReasonNextPage},
			current:  current,
			pending:  pending,
			want:     proceed,
		},
		{
			name:     "replace queue prescribes pending cancellation",
			behavior: BehaviorReplaceQueue,
			desc:     LoadDescription[string]{Token: "p9", Reason: ReasonNextPage},
			current:  current,
			pending:  pending,
			want:     proceedCancelPending,
		},
		{
			name:     "cancel all other prescribes full cancellation",
			behavior: BehaviorCancelAllOther,
			desc:     LoadDescription[string]{Token: "p1", Reason: ReasonInitialPage},
			current:  current,
			pending:  pending,
			want:     proceedCancelAll,
		},
		{
			name:     "skip drops when current occupied",
			behavior: BehaviorSkip,
			desc:     LoadDescription[string]{Token: "p9", Reason: ReasonNextPage},
			current:  current,
			want:     drop,
		},
		{
			name:     "skip drops when queue non-empty",
			behavior: BehaviorSkip,
			desc:     LoadDescription[string]{Token: "p9", Reason: ReasonNextPage},
			pending:  pending,
			want:     drop,
		},
		{
			name:     "skip admits on idle scheduler",
			behavior: BehaviorSkip,
			desc:     LoadDescription[string]{Token: "p9", Reason: ReasonNextPage},
			want:     proceed,
		},
		{
			name:     "skip-same drops on identical description",
			behavior: BehaviorSkipSame,
			desc:     LoadDescription[string]{Token: "p2", Reason: ReasonNextPage},
			current:  current,
			pending:  pending,
			want:     drop,
		},
		{
			name:     "skip-same admits when token matches but reason differs",
			behavior: BehaviorSkipSame,
			desc:     LoadDescription[string]{Token: "p2", Reason: ReasonPreviousPage},
			current:  current,
			pending:  pending,
			want:     proceed,
		},
		{
			name:     "skip-same-reason drops on matching reason in queue",
			behavior: BehaviorSkipSameReason,
			desc:     LoadDescription[string]{Token: "p9", Reason: ReasonNextPage},
			current:  current,
			pending:  pending,
			want:     drop,
		},
		{
			name:     "skip-same-reason drops on matching current",
			behavior: BehaviorSkipSameReason,
			desc:     LoadDescription[string]{Token: "p9", Reason: ReasonInitialPage},
			current:  current,
			want:     drop,
		},
		{
			name:     "skip-same-reason admits on new reason",
			behavior: BehaviorSkipSameReason,
			desc:     LoadDescription[string]{Token: "p9", Reason: ReasonPreviousPage},
			current:  current,
			pending:  pending,
			want:     proceed,
		},
		{
			name:     "skip-same-page-info drops on matching token",
			behavior: BehaviorSkipSamePageInfo,
			desc:     LoadDescription[string]{Token: "p3", Reason: ReasonPreviousPage},
			current:  current,
			pending:  pending,
			want:     drop,
		},
		{
			name:     "skip-same-page-info admits on new token",
			behavior: BehaviorSkipSamePageInfo,
			desc:     LoadDescription[string]{Token: "p9", Reason: ReasonNextPage},
			current:  current,
			pending:  pending,
			want:     proceed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decideAdmission(tt.behavior, tt.desc, tt.current, tt.pending)
			if got != tt.want {
				t.Fatalf("decideAdmission: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestDecideAdmission_IsReadOnly(t *testing.T) {
	current := pl("p1", ReasonInitialPage)
	pending := []*pipeline[string, int]{pl("p2", ReasonNextPage)}

	decideAdmission(BehaviorCancelAllOther,
		LoadDescription[string]{Token: "p9", Reason: ReasonInitialPage}, current, pending)

	// the decision prescribes cancellation but must not perform it
	if current.ctx != nil || pending[0].ctx != nil {
		t.Fatal("policy must not touch pipeline state")
	}
}
