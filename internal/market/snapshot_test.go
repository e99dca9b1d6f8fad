package market

import (
	"errors"
	"math"
	"testing"

	"llm-forex-bot/internal/pairs"
	"llm-forex-bot/internal/types"
)

func eurusd(t *testing.T) pairs.PairSpec {
	t.Helper()
	spec, err := pairs.Resolve("EURUSD")
	if err != nil {
		t.Fatal(err)
	}
	return spec
}

func TestBuildSnapshotEmptyHistory(t *testing.T) {
	_, err := BuildSnapshot(eurusd(t), nil)
	if err == nil {
		t.Fatal("expected error for empty history")
	}
	var nde *NoDataError
	if !errors.As(err, &nde) {
		t.Fatalf("error is %T, want *NoDataError", err)
	}
	if nde.Pair != "EURUSD" {
		t.Errorf("NoDataError.Pair = %s, want EURUSD", nde.Pair)
	}
}

func TestBuildSnapshotTwoBars(t *testing.T) {
	bars := []types.PriceBar{
		{Ts: 1, Open: 1.0990, High: 1.1010, Low: 1.0980, Close: 1.1000},
		{Ts: 2, Open: 1.1000, High: 1.1030, Low: 1.1000, Close: 1.1020},
	}

	snap, err := BuildSnapshot(eurusd(t), bars)
	if err != nil {
		t.Fatal(err)
	}

	if snap.CurrentRate != 1.1020 {
		t.Errorf("CurrentRate = %v, want 1.1020", snap.CurrentRate)
	}
	if snap.PrevClose != 1.1000 {
		t.Errorf("PrevClose = %v, want 1.1000", snap.PrevClose)
	}
	if math.Abs(snap.Change-0.0020) > 1e-12 {
		t.Errorf("Change = %v, want 0.0020", snap.Change)
	}
	if math.Abs(snap.ChangePct-0.18181818) > 1e-6 {
		t.Errorf("ChangePct = %v, want ~0.1818", snap.ChangePct)
	}
	if snap.High != 1.1030 || snap.Low != 1.0980 {
		t.Errorf("High/Low = %v/%v, want 1.1030/1.0980", snap.High, snap.Low)
	}
	if snap.Support != snap.Low || snap.Resistance != snap.High {
		t.Errorf("Support/Resistance = %v/%v, want window low/high", snap.Support, snap.Resistance)
	}
	// Mean of (1.1010-1.0980) and (1.1030-1.1000).
	if math.Abs(snap.Volatility-0.0030) > 1e-12 {
		t.Errorf("Volatility = %v, want 0.0030", snap.Volatility)
	}
	if snap.BaseCurrency != "EUR" || snap.QuoteCurrency != "USD" {
		t.Errorf("currencies = %s/%s, want EUR/USD", snap.BaseCurrency, snap.QuoteCurrency)
	}
}

func TestBuildSnapshotSingleBar(t *testing.T) {
	bars := []types.PriceBar{{Ts: 1, Open: 1.10, High: 1.11, Low: 1.09, Close: 1.105}}

	snap, err := BuildSnapshot(eurusd(t), bars)
	if err != nil {
		t.Fatal(err)
	}
	if snap.PrevClose != snap.CurrentRate {
		t.Errorf("single bar: PrevClose = %v, want CurrentRate %v", snap.PrevClose, snap.CurrentRate)
	}
	if snap.Change != 0 || snap.ChangePct != 0 {
		t.Errorf("single bar: change = %v (%v%%), want 0", snap.Change, snap.ChangePct)
	}
}

func TestBuildSnapshotZeroPrevClose(t *testing.T) {
	bars := []types.PriceBar{
		{Ts: 1, Close: 0, High: 0.1, Low: 0},
		{Ts: 2, Close: 1.1, High: 1.2, Low: 1.0},
	}

	snap, err := BuildSnapshot(eurusd(t), bars)
	if err != nil {
		t.Fatal(err)
	}
	if snap.ChangePct != 0 {
		t.Errorf("ChangePct with zero prev close = %v, want 0", snap.ChangePct)
	}
}

func TestPositionInRangeDegenerate(t *testing.T) {
	// Every bar identical: support == resistance.
	bars := []types.PriceBar{
		{Ts: 1, Open: 1.1, High: 1.1, Low: 1.1, Close: 1.1},
		{Ts: 2, Open: 1.1, High: 1.1, Low: 1.1, Close: 1.1},
	}

	snap, err := BuildSnapshot(eurusd(t), bars)
	if err != nil {
		t.Fatal(err)
	}
	if snap.PositionInRange != 50 {
		t.Errorf("degenerate window PositionInRange = %v, want exactly 50", snap.PositionInRange)
	}
}

func TestPositionInRangeClamped(t *testing.T) {
	// Close above window high: clamp to 100.
	bars := []types.PriceBar{
		{Ts: 1, High: 1.10, Low: 1.05, Close: 1.08},
		{Ts: 2, High: 1.09, Low: 1.06, Close: 1.20},
	}
	snap, err := BuildSnapshot(eurusd(t), bars)
	if err != nil {
		t.Fatal(err)
	}
	if snap.PositionInRange != 100 {
		t.Errorf("PositionInRange = %v, want clamped 100", snap.PositionInRange)
	}

	// Close below window low: clamp to 0.
	bars[1].Close = 0.90
	snap, err = BuildSnapshot(eurusd(t), bars)
	if err != nil {
		t.Fatal(err)
	}
	if snap.PositionInRange != 0 {
		t.Errorf("PositionInRange = %v, want clamped 0", snap.PositionInRange)
	}
}
