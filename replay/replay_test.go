package replay

import (
	"strings"
	"testing"

	"limitbook/domain"
	"limitbook/orderbook"
)

func TestParseEventAdd(t *testing.T) {
	ev, err := ParseEvent("7, BID, 100, 10")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := Event{Action: ActionAdd, OrderType: domain.GoodTillCancel, ID: 7, Side: domain.Buy, Price: 100, Quantity: 10}
	if ev != want {
		t.Errorf("expected %+v, got %+v", want, ev)
	}
}

func TestParseEventFillAndKill(t *testing.T) {
	ev, err := ParseEvent("2, ASK, 101, 5, FAK")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if ev.OrderType != domain.FillAndKill || ev.Side != domain.Sell {
		t.Errorf("FAK ask parsed wrong: %+v", ev)
	}
}

func TestParseEventCancelModify(t *testing.T) {
	ev, err := ParseEvent("cancel, 3")
	if err != nil {
		t.Fatalf("parse cancel: %v", err)
	}
	if ev.Action != ActionCancel || ev.ID != 3 {
		t.Errorf("cancel parsed wrong: %+v", ev)
	}

	ev, err = ParseEvent("modify, 3, ASK, 105, 8")
	if err != nil {
		t.Fatalf("parse modify: %v", err)
	}
	if ev.Action != ActionModify || ev.ID != 3 || ev.Side != domain.Sell || ev.Price != 105 || ev.Quantity != 8 {
		t.Errorf("modify parsed wrong: %+v", ev)
	}
}

func TestParseEventRejectsGarbage(t *testing.T) {
	for _, line := range []string{
		"",
		"1, NORTH, 100, 10",
		"1, BID, ten, 10",
		"1, BID, 100, 10, GTC",
		"cancel",
		"modify, 1, BID, 100",
	} {
		if _, err := ParseEvent(line); err == nil {
			t.Errorf("expected parse error for %q", line)
		}
	}
}

func TestLoadAndRun(t *testing.T) {
	const script = `
- name: crossing pair
  capacity: 16
  events:
    - "1, BID, 100, 10"
    - "2, ASK, 100, 4"
    - "cancel, 1"
`
	scripts, err := Load(strings.NewReader(script))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(scripts) != 1 || scripts[0].Name != "crossing pair" {
		t.Fatalf("unexpected scripts: %+v", scripts)
	}

	book, trades, err := scripts[0].RunScript()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(trades) != 1 || trades[0].Bid.Quantity != 4 {
		t.Errorf("expected one trade of quantity 4, got %+v", trades)
	}
	if book.Size() != 0 {
		t.Errorf("expected empty book after cancel, got size %d", book.Size())
	}
}

func TestRunStopsOnEngineError(t *testing.T) {
	book := orderbook.NewOrderBook(1)
	events, err := ParseEvents([]string{
		"1, BID, 100, 10",
		"2, BID, 99, 10",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if _, err := Run(book, events); err == nil {
		t.Error("expected pool exhaustion to surface from Run")
	}
}
