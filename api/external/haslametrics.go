/* haslametrics.go
 * Contains the normalizer for the Haslametrics ratings XML. Every team is an
 * <mr> element carrying all of its data as named attributes
 * Authors: Courtwatch developers
 */

package external

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// NormalizeHaslametrics parses the ratings XML into typed team stats.
// Elements missing the team name ("t") or numeric id ("id") attribute are
// skipped; other attributes that fail to parse degrade to 0.
//
// Attribute reference:
//
//	rk   rank            oe  offensive efficiency   mom momentum
//	t    team name       de  defensive efficiency   mmo momentum offense
//	id   raw team id     ou  pace (poss/game)       mmd momentum defense
//	ap   AP% (0-1)       w/l wins and losses        ptf Paper Tiger Factor
//
// The team capsule id is derived as tid = id*2 + 23, the formula used by the
// ratings page itself. The ap attribute is stored as a 0-1 fraction and is
// rescaled to a 0-100 percentage here.
func NormalizeHaslametrics(xmlContent string) []HaslametricsTeamStats {
	if strings.TrimSpace(xmlContent) == "" {
		return nil
	}

	var results []HaslametricsTeamStats

	decoder := xml.NewDecoder(strings.NewReader(xmlContent))
	for {
		token, err := decoder.Token()
		if err != nil {
			// End of document or malformed trailing content; keep what we have
			break
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "mr" {
			continue
		}

		attrs := make(map[string]string, len(start.Attr))
		for _, attr := range start.Attr {
			attrs[attr.Name.Local] = attr.Value
		}

		teamName := strings.TrimSpace(attrs["t"])
		if teamName == "" {
			continue
		}
		rawID := attrInt(attrs, "id")
		if rawID == 0 {
			continue
		}

		results = append(results, HaslametricsTeamStats{
			TeamName:  teamName,
			HaslRank:  attrInt(attrs, "rk"),
			TID:       rawID*2 + 23,
			APPct:     attrFloat(attrs, "ap") * 100,
			AdjO:      attrFloat(attrs, "oe"),
			AdjD:      attrFloat(attrs, "de"),
			Pace:      attrFloat(attrs, "ou"),
			Momentum:  attrFloat(attrs, "mom"),
			MomentumO: attrFloat(attrs, "mmo"),
			MomentumD: attrFloat(attrs, "mmd"),
			PTF:       attrFloat(attrs, "ptf"),
			Wins:      attrInt(attrs, "w"),
			Losses:    attrInt(attrs, "l"),
		})
	}

	return results
}

// attrFloat parses a float attribute, degrading to 0 on failure
func attrFloat(attrs map[string]string, key string) float64 {
	val, ok := attrs[key]
	if !ok {
		return 0
	}
	n, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0
	}
	return n
}

// attrInt parses an integer attribute, degrading to 0 on failure
func attrInt(attrs map[string]string, key string) int {
	val, ok := attrs[key]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return n
}
