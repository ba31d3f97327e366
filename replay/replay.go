// Package replay feeds recorded order flow to a book. Event logs are
// YAML scripts whose events use one comma-separated line per order
// action, the same shape the engine's scenario fixtures use:
//
//	"1, BID, 100, 10"          add GoodTillCancel
//	"2, ASK, 101, 5, FAK"      add FillAndKill
//	"cancel, 1"
//	"modify, 1, BID, 102, 8"
package replay

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v2"

	"limitbook/domain"
	"limitbook/orderbook"
)

// Action is what an event does to the book.
type Action int

const (
	ActionAdd Action = iota
	ActionCancel
	ActionModify
)

// Event is one parsed order action.
type Event struct {
	Action    Action
	OrderType domain.OrderType
	ID        domain.OrderID
	Side      domain.Side
	Price     domain.Price
	Quantity  domain.Quantity
}

// Script is one named replay scenario.
type Script struct {
	Name     string   `yaml:"name"`
	Capacity int      `yaml:"capacity"`
	Events   []string `yaml:"events"`
}

// Load reads a YAML document holding a list of scripts.
func Load(r io.Reader) ([]Script, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("replay: read script: %w", err)
	}

	var scripts []Script
	if err := yaml.Unmarshal(raw, &scripts); err != nil {
		return nil, fmt.Errorf("replay: parse script: %w", err)
	}
	return scripts, nil
}

// ParseEvent parses one event line.
func ParseEvent(line string) (Event, error) {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	switch fields[0] {
	case "cancel":
		if len(fields) != 2 {
			return Event{}, fmt.Errorf("replay: cancel wants 'cancel, id': %q", line)
		}
		id, err := parseID(fields[1])
		if err != nil {
			return Event{}, fmt.Errorf("replay: %w in %q", err, line)
		}
		return Event{Action: ActionCancel, ID: id}, nil

	case "modify":
		if len(fields) != 5 {
			return Event{}, fmt.Errorf("replay: modify wants 'modify, id, side, price, quantity': %q", line)
		}
		ev, err := parseOrderFields(fields[1:])
		if err != nil {
			return Event{}, fmt.Errorf("replay: %w in %q", err, line)
		}
		ev.Action = ActionModify
		return ev, nil

	default:
		if len(fields) != 4 && len(fields) != 5 {
			return Event{}, fmt.Errorf("replay: add wants 'id, side, price, quantity[, FAK]': %q", line)
		}
		ev, err := parseOrderFields(fields[:4])
		if err != nil {
			return Event{}, fmt.Errorf("replay: %w in %q", err, line)
		}
		ev.Action = ActionAdd
		if len(fields) == 5 {
			if fields[4] != "FAK" {
				return Event{}, fmt.Errorf("replay: unknown order flag %q in %q", fields[4], line)
			}
			ev.OrderType = domain.FillAndKill
		}
		return ev, nil
	}
}

// parseOrderFields parses the common "id, side, price, quantity" tail.
func parseOrderFields(fields []string) (Event, error) {
	id, err := parseID(fields[0])
	if err != nil {
		return Event{}, err
	}

	var side domain.Side
	switch fields[1] {
	case "BID":
		side = domain.Buy
	case "ASK":
		side = domain.Sell
	default:
		return Event{}, fmt.Errorf("unknown side %q", fields[1])
	}

	price, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return Event{}, fmt.Errorf("bad price %q", fields[2])
	}
	quantity, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return Event{}, fmt.Errorf("bad quantity %q", fields[3])
	}

	return Event{
		OrderType: domain.GoodTillCancel,
		ID:        id,
		Side:      side,
		Price:     domain.Price(price),
		Quantity:  domain.Quantity(quantity),
	}, nil
}

func parseID(s string) (domain.OrderID, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad order id %q", s)
	}
	return domain.OrderID(id), nil
}

// ParseEvents parses a whole script body.
func ParseEvents(lines []string) ([]Event, error) {
	events := make([]Event, 0, len(lines))
	for _, line := range lines {
		ev, err := ParseEvent(line)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// Run applies events to the book in order and returns every trade the
// replay produced.
func Run(book *orderbook.OrderBook, events []Event) ([]domain.Trade, error) {
	var trades []domain.Trade
	for _, ev := range events {
		switch ev.Action {
		case ActionAdd:
			produced, err := book.AddOrder(ev.OrderType, ev.ID, ev.Side, ev.Price, ev.Quantity)
			if err != nil {
				return trades, err
			}
			trades = append(trades, produced...)
		case ActionCancel:
			if err := book.CancelOrder(ev.ID); err != nil {
				return trades, err
			}
		case ActionModify:
			produced, err := book.ModifyOrder(ev.ID, ev.Side, ev.Price, ev.Quantity)
			if err != nil {
				return trades, err
			}
			trades = append(trades, produced...)
		}
	}
	return trades, nil
}

// RunScript builds a fresh book sized by the script and replays it.
func (s *Script) RunScript() (*orderbook.OrderBook, []domain.Trade, error) {
	events, err := ParseEvents(s.Events)
	if err != nil {
		return nil, nil, err
	}
	book := orderbook.NewOrderBook(s.Capacity)
	trades, err := Run(book, events)
	return book, trades, err
}
