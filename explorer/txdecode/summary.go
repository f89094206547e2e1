package txdecode

import (
	"fmt"
	"strings"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/models"
)

// ShortName derives the display label of a message type:
// "/cosmos.bank.v1beta1.MsgSend" gives "Send", "cosmos-sdk/MsgDelegate" gives "Delegate".
func ShortName(typeURL string) string {
	name := typeURL
	if i := strings.LastIndexAny(name, "./"); i >= 0 {
		name = name[i+1:]
	}
	return strings.Replace(name, "Msg", "", 1)
}

// Summarize counts the labels and renders them as "Label×N" in first seen order
func Summarize(labels []string) string {
	counts := make(map[string]int, len(labels))
	order := make([]string, 0, len(labels))
	for _, l := range labels {
		if _, seen := counts[l]; !seen {
			order = append(order, l)
		}
		counts[l]++
	}

	parts := make([]string, 0, len(order))
	for _, l := range order {
		parts = append(parts, fmt.Sprintf("%s×%d", l, counts[l]))
	}
	return strings.Join(parts, ", ")
}

// SummarizeMessages is Summarize over decoded messages
func SummarizeMessages(msgs []Message) string {
	labels := make([]string, 0, len(msgs))
	for _, m := range msgs {
		labels = append(labels, ShortName(m.TypeURL()))
	}
	return Summarize(labels)
}

// SummarizeLegacy is Summarize over amino messages of the /txs search
func SummarizeLegacy(msgs []models.LegacyMsg) string {
	labels := make([]string, 0, len(msgs))
	for _, m := range msgs {
		labels = append(labels, ShortName(m.Type))
	}
	return Summarize(labels)
}
