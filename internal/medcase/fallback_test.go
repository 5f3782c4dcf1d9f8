package medcase

import "testing"

func TestBank_GetPerDifficulty(t *testing.T) {
	b := NewBank()

	for _, d := range []Difficulty{DifficultyBasic, DifficultyIntermediate, DifficultyAdvanced} {
		c := b.Get(d)
		if c.Difficulty != d {
			t.Errorf("Get(%q).Difficulty = %q, want %q", d, c.Difficulty, d)
		}
		if !c.Fallback {
			t.Errorf("Get(%q).Fallback = false, want true", d)
		}
	}
}

func TestBank_UnknownDifficultyFallsBackToBasic(t *testing.T) {
	b := NewBank()
	c := b.Get(Difficulty("expert"))
	if c.Difficulty != DifficultyBasic {
		t.Errorf("Difficulty = %q, want %q", c.Difficulty, DifficultyBasic)
	}
	if !c.Fallback {
		t.Error("Fallback = false, want true")
	}
}

func TestBank_BuiltinCasesPassValidation(t *testing.T) {
	validators := DefaultValidators()
	for _, c := range builtinCases {
		c := c
		if err := Validate(&c, validators); err != nil {
			t.Errorf("builtin case %q fails validation: %v", c.ID, err)
		}
	}
}
