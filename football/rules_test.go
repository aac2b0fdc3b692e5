package football

import (
	"testing"
)

func TestNewRules(t *testing.T) {
	_, err := NewRules(-3, 1, 3, 11, 1)
	if err != ErrNegativePoints {
		t.Fatal("negative win points did not error")
	}

	_, err = NewRules(3, 1, -1, 11, 1)
	if err != ErrNegativePoints {
		t.Fatal("negative knockout bonus did not error")
	}

	_, err = NewRules(1, 3, 3, 11, 1)
	if err != ErrDrawExceedsWin {
		t.Fatal("draw points above win points did not error")
	}

	_, err = NewRules(3, 1, 3, 0, 0)
	if err != ErrSquadZero {
		t.Fatal("zero squad size did not error")
	}

	_, err = NewRules(3, 1, 3, 11, -1)
	if err != ErrNegativeGoalkeepers {
		t.Fatal("negative goalkeeper count did not error")
	}

	_, err = NewRules(3, 1, 3, 2, 3)
	if err != ErrGoalkeepersExceedSquad {
		t.Fatal("goalkeepers above squad size did not error")
	}

	rules, err := NewRules(3, 1, 3, 11, 1)
	if err != nil || rules != DefaultRules() {
		t.Fatal("standard rules did not validate or differ from the defaults")
	}
}

func TestEligible(t *testing.T) {
	rules := DefaultRules()

	if rules.Eligible(10, 1) {
		t.Fatal("a squad of 10 is eligible")
	}
	if rules.Eligible(11, 0) {
		t.Fatal("a squad without a goalkeeper is eligible")
	}
	if !rules.Eligible(11, 1) || !rules.Eligible(30, 4) {
		t.Fatal("a full squad is not eligible")
	}
}

func TestAward(t *testing.T) {
	rules := DefaultRules()

	home, away := rules.Award(Result{Home: 5, Away: 2})
	if home != 3 || away != 0 {
		t.Fatal("home win was not awarded correctly")
	}

	home, away = rules.Award(Result{Home: -1, Away: 0})
	if home != 0 || away != 3 {
		t.Fatal("away win was not awarded correctly")
	}

	home, away = rules.Award(Result{Home: 4, Away: 4})
	if home != 1 || away != 1 {
		t.Fatal("draw was not awarded correctly")
	}
}

func TestResult(t *testing.T) {
	r := Result{Home: 7, Away: 2}
	winner, err := r.GetWinner()
	if err != nil || winner != 0 {
		t.Fatal("home side did not win")
	}

	winner, err = r.Invert().GetWinner()
	if err != nil || winner != 1 {
		t.Fatal("inverted result did not flip the winner")
	}

	_, err = Result{Home: 1, Away: 1}.GetWinner()
	if err != ErrDraw {
		t.Fatal("equal strengths did not result in a draw")
	}
}

func TestStrength(t *testing.T) {
	if Strength(10, 4, 6) != 8 {
		t.Fatal("strength is not points plus goals minus cards")
	}
	if Strength(0, 0, 3) != -3 {
		t.Fatal("strength did not go negative")
	}
}
