package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goodnatureofminers/dronedrop-ledger/internal/ledger/model"
)

// parseDelivery reads "sender:target:gps". The sender may itself contain colons.
func parseDelivery(raw string) (model.DeliveryRecord, error) {
	gpsSep := strings.LastIndex(raw, ":")
	if gpsSep < 0 {
		return model.DeliveryRecord{}, fmt.Errorf("delivery %q: want sender:target:gps", raw)
	}
	targetSep := strings.LastIndex(raw[:gpsSep], ":")
	if targetSep < 0 {
		return model.DeliveryRecord{}, fmt.Errorf("delivery %q: want sender:target:gps", raw)
	}

	gps, err := strconv.ParseFloat(strings.TrimSpace(raw[gpsSep+1:]), 64)
	if err != nil {
		return model.DeliveryRecord{}, fmt.Errorf("delivery %q gps: %w", raw, err)
	}
	if math.IsNaN(gps) || math.IsInf(gps, 0) {
		return model.DeliveryRecord{}, fmt.Errorf("delivery %q gps must be finite", raw)
	}

	return model.DeliveryRecord{
		Sender: raw[:targetSep],
		Target: raw[targetSep+1 : gpsSep],
		GPS:    gps,
	}, nil
}

func parseDeliveries(raw []string) ([]model.DeliveryRecord, error) {
	out := make([]model.DeliveryRecord, 0, len(raw))
	for _, r := range raw {
		d, err := parseDelivery(r)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
