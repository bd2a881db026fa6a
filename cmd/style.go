package main

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/croupier/config"
	"github.com/luca-patrignani/croupier/domain/blackjack"
	"github.com/luca-patrignani/croupier/domain/card"
)

func printBanner() {
	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("C", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("roupier", pterm.FgDarkGray.ToStyle()),
	).Render()
}

func disabledIfEmpty(s string) string {
	if s == "" {
		return pterm.LightRed("disabled")
	}
	return s
}

func configRows(cfg config.Config) [][]string {
	discovery := pterm.LightRed("disabled")
	if cfg.DiscoveryPort != 0 {
		discovery = strconv.Itoa(int(cfg.DiscoveryPort)) + " every " + cfg.AnnounceEvery.String()
	}
	return [][]string{
		{"Setting", "Value"},
		{"UDP address", cfg.Addr},
		{"Decks", strconv.Itoa(cfg.Decks)},
		{"Seats", strconv.Itoa(cfg.Capacity)},
		{"Hit routing", string(cfg.HitRouting)},
		{"Opening deal", strconv.FormatBool(cfg.OpeningDeal)},
		{"Ledger", strconv.FormatBool(cfg.Ledger)},
		{"NATS", disabledIfEmpty(cfg.NatsURL)},
		{"Status API", disabledIfEmpty(cfg.StatusAddr)},
		{"Discovery", discovery},
	}
}

func printConfig(cfg config.Config) {
	pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(configRows(cfg)).Render()
	pterm.Println()
}

func tableRows(snap blackjack.Snapshot) [][]string {
	rows := [][]string{{"Player", "Bet", "Hand", "Value", "Split", "Standing"}}
	for _, s := range snap.Sessions {
		split := "-"
		if s.HasSplit {
			split = strings.Join(card.Pretties(s.Split), " ") + " (" + strconv.Itoa(blackjack.Value(s.Split)) + ")"
		}
		rows = append(rows, []string{
			s.Name,
			strconv.Itoa(s.Bet),
			strings.Join(card.Pretties(s.Primary), " "),
			strconv.Itoa(blackjack.Value(s.Primary)),
			split,
			strconv.FormatBool(s.Standing),
		})
	}
	return rows
}

func printTable(snap blackjack.Snapshot) {
	pterm.Info.Printfln("%d of %d seats taken, %d cards left in the shoe", len(snap.Sessions), snap.Capacity, snap.ShoeRemaining)
	if len(snap.Sessions) == 0 {
		return
	}
	pterm.DefaultTable.WithHasHeader().WithData(tableRows(snap)).Render()
}
