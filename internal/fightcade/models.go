package fightcade

import (
	"encoding/json"
	"strings"
)

// Player is a single row of the global ranking for a game as returned by the
// searchrankings request. Records are immutable once fetched; a cache refresh
// replaces them wholesale.
type Player struct {
	Name     string              `json:"name"`
	Country  Country             `json:"country"`
	GameInfo map[string]GameInfo `json:"gameinfo"`
}

// Stats returns the per-game numbers for the given game id. Missing games
// yield the zero value, the API omits gameinfo for players with no matches.
func (p Player) Stats(gameID string) GameInfo {
	if p.GameInfo == nil {
		return GameInfo{}
	}

	return p.GameInfo[gameID]
}

// EqualName compares player names the way the ranking treats them, case
// insensitively.
func (p Player) EqualName(name string) bool {
	return strings.EqualFold(p.Name, name)
}

type GameInfo struct {
	Rank       int   `json:"rank"`
	NumMatches int   `json:"num_matches"`
	Wins       int   `json:"wins"`
	Losses     int   `json:"losses"`
	TimePlayed int64 `json:"time_played"`
}

// Country is either a bare ISO code string or an object depending on the
// endpoint, so it needs a custom decoder.
type Country struct {
	Code string `json:"iso_code"`
	Name string `json:"full_name"`
}

func (c *Country) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var code string
		if err := json.Unmarshal(data, &code); err != nil {
			return err
		}
		c.Code = code

		return nil
	}

	type alias Country
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*c = Country(obj)

	return nil
}

type User struct {
	Name     string              `json:"name"`
	GameInfo map[string]GameInfo `json:"gameinfo"`
}

// Replay is a single recorded match from the replay listing endpoint.
type Replay struct {
	QuarkID string     `json:"quarkid"`
	TS      int64      `json:"ts"`
	Winner  int        `json:"winner"`
	P1      ReplaySide `json:"p1"`
	P2      ReplaySide `json:"p2"`
}

type ReplaySide struct {
	Name      string `json:"name"`
	Character string `json:"char"`
}

// apiResponse is the envelope every POST request comes back in. res holds
// "OK" on success and a short error string otherwise.
type apiResponse struct {
	Res     string          `json:"res"`
	Error   string          `json:"error,omitempty"`
	Results *rankingResults `json:"results,omitempty"`
	User    *User           `json:"user,omitempty"`
}

type rankingResults struct {
	Results []Player `json:"results"`
	Count   int      `json:"count"`
}

type replayResponse struct {
	Res     string   `json:"res"`
	Results []Replay `json:"results"`
}
