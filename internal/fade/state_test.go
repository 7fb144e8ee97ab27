package fade

import "testing"

func TestTransitions_CoverEveryStateAndDirection(t *testing.T) {
	for _, st := range []State{Hidden, FadingIn, Visible, FadingOut} {
		for _, dir := range []Direction{In, Out} {
			if _, ok := transitions[st][dir]; !ok {
				t.Errorf("no transition for %v on fade %v", st, dir)
			}
		}
	}
}

func TestTransitions_SameDirectionIsNoop(t *testing.T) {
	if transitions[FadingIn][In] != actJoin {
		t.Error("fade in while fading in must join the live operation")
	}
	if transitions[FadingOut][Out] != actJoin {
		t.Error("fade out while fading out must join the live operation")
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Hidden, "Hidden"},
		{FadingIn, "FadingIn"},
		{Visible, "Visible"},
		{FadingOut, "FadingOut"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("State.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestState_IsFading(t *testing.T) {
	if Hidden.IsFading() || Visible.IsFading() {
		t.Error("resting states report fading")
	}
	if !FadingIn.IsFading() || !FadingOut.IsFading() {
		t.Error("fading states do not report fading")
	}
}
