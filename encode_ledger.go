package rentability

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/etnz/rentability/date"
	"github.com/shopspring/decimal"
)

// A ledger file lists orders, one per record:
//
//	symbol,date,quantity,price,owner,buy
//	PETR4,15/01/2021,100,28.50,ana,True
//
// in CSV, or in JSONL:
//
//	{"symbol":"PETR4","date":"2021-01-15","quantity":100,"price":"28.50","owner":"ana","buy":true}
//
// Dates are day first (DD/MM/YYYY) or ISO. The CSV header line is optional.

// ledgerLine is the JSONL representation of an order.
type ledgerLine struct {
	Symbol   string          `json:"symbol"`
	Date     date.Date       `json:"date"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Owner    string          `json:"owner,omitempty"`
	Buy      bool            `json:"buy"`
}

// LoadLedger reads a ledger file, CSV or JSONL depending on its extension.
func LoadLedger(path string) (Portfolio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", path, err)
	}
	defer f.Close()

	var p Portfolio
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		p, err = DecodeCSV(f)
	case ".jsonl", ".json":
		p, err = DecodeJSONL(f)
	default:
		return nil, fmt.Errorf("unsupported ledger format %q for %q", ext, path)
	}
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", path, err)
	}
	return p, nil
}

// DecodeCSV reads a CSV ledger.
func DecodeCSV(r io.Reader) (Portfolio, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	p := NewPortfolio()
	for first := true; ; first = false {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return p, nil
		}
		if err != nil {
			return nil, err // a csv.ParseError carries its line
		}
		line, _ := cr.FieldPos(0)
		if first && strings.EqualFold(strings.TrimSpace(record[0]), "symbol") {
			continue // header
		}
		if len(record) < 4 {
			return nil, fmt.Errorf("line %d: got %d fields want at least 4 (symbol,date,quantity,price[,owner][,buy])", line, len(record))
		}
		var owner, direction string
		if len(record) > 4 {
			owner = record[4]
		}
		if len(record) > 5 {
			direction = record[5]
		}
		symbol, on, order, err := parseOrder(record[0], record[1], record[2], record[3], owner, direction)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		p.Add(symbol, on, order)
	}
}

// DecodeJSONL reads a JSONL ledger.
func DecodeJSONL(r io.Reader) (Portfolio, error) {
	p := NewPortfolio()
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var l ledgerLine
		if err := json.Unmarshal([]byte(text), &l); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if l.Date.IsZero() {
			return nil, fmt.Errorf("line %d: missing date", line)
		}
		if err := validateOrder(l.Symbol, l.Quantity, l.Price); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		p.Add(l.Symbol, l.Date, Order{Quantity: l.Quantity, Price: l.Price, Owner: l.Owner, Buy: l.Buy})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// EncodeJSONL writes the portfolio as a JSONL ledger, in symbol then chronological order.
func EncodeJSONL(w io.Writer, p Portfolio) error {
	enc := json.NewEncoder(w)
	for _, symbol := range p.Symbols() {
		h := p[symbol]
		for _, on := range h.Dates() {
			for _, o := range h.Orders[on] {
				l := ledgerLine{Symbol: symbol, Date: on, Quantity: o.Quantity, Price: o.Price, Owner: o.Owner, Buy: o.Buy}
				if err := enc.Encode(l); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func parseOrder(symbol, day, quantity, price, owner, direction string) (string, date.Date, Order, error) {
	symbol = strings.TrimSpace(symbol)
	on, err := date.ParseAny(strings.TrimSpace(day))
	if err != nil {
		return "", date.Date{}, Order{}, err
	}
	qty, err := strconv.ParseInt(strings.TrimSpace(quantity), 10, 64)
	if err != nil {
		return "", date.Date{}, Order{}, fmt.Errorf("invalid quantity %q: %w", quantity, err)
	}
	px, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return "", date.Date{}, Order{}, fmt.Errorf("invalid price %q: %w", price, err)
	}
	buy, err := parseDirection(direction)
	if err != nil {
		return "", date.Date{}, Order{}, err
	}
	if err := validateOrder(symbol, qty, px); err != nil {
		return "", date.Date{}, Order{}, err
	}
	return symbol, on, Order{Quantity: qty, Price: px, Owner: strings.TrimSpace(owner), Buy: buy}, nil
}

// parseDirection reads the buy flag. An empty flag is a buy.
func parseDirection(s string) (buy bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "true", "1", "buy", "b":
		return true, nil
	case "false", "0", "sell", "s":
		return false, nil
	default:
		return false, fmt.Errorf("invalid buy flag %q want True or False", s)
	}
}

func validateOrder(symbol string, qty int64, price decimal.Decimal) error {
	var errs error
	if symbol == "" {
		errs = errors.Join(errs, errors.New("missing symbol"))
	}
	if qty <= 0 {
		errs = errors.Join(errs, fmt.Errorf("quantity must be positive, got %d", qty))
	}
	if !price.IsPositive() {
		errs = errors.Join(errs, fmt.Errorf("price must be positive, got %s", price))
	}
	return errs
}
