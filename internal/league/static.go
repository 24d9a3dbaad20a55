package league

import (
	"sort"

	"github.com/scorecheck/scorecheck/internal/models"
)

var nbaTeamNames = []string{
	"Atlanta Hawks", "Boston Celtics", "Brooklyn Nets", "Charlotte Hornets",
	"Chicago Bulls", "Cleveland Cavaliers", "Dallas Mavericks", "Denver Nuggets",
	"Detroit Pistons", "Golden State Warriors", "Houston Rockets", "Indiana Pacers",
	"LA Clippers", "Los Angeles Lakers", "Memphis Grizzlies", "Miami Heat",
	"Milwaukee Bucks", "Minnesota Timberwolves", "New Orleans Pelicans",
	"New York Knicks", "Oklahoma City Thunder", "Orlando Magic",
	"Philadelphia 76ers", "Phoenix Suns", "Portland Trail Blazers",
	"Sacramento Kings", "San Antonio Spurs", "Toronto Raptors", "Utah Jazz",
	"Washington Wizards",
}

var nhlTeamNames = []string{
	"Anaheim Ducks", "Utah Mammoth", "Boston Bruins", "Buffalo Sabres",
	"Calgary Flames", "Carolina Hurricanes", "Chicago Blackhawks",
	"Colorado Avalanche", "Columbus Blue Jackets", "Dallas Stars",
	"Detroit Red Wings", "Edmonton Oilers", "Florida Panthers",
	"Los Angeles Kings", "Minnesota Wild", "Montreal Canadiens",
	"Nashville Predators", "New Jersey Devils", "New York Islanders",
	"New York Rangers", "Ottawa Senators", "Philadelphia Flyers",
	"Pittsburgh Penguins", "San Jose Sharks", "Seattle Kraken",
	"St. Louis Blues", "Tampa Bay Lightning", "Toronto Maple Leafs",
	"Vancouver Canucks", "Vegas Golden Knights", "Washington Capitals",
	"Winnipeg Jets",
}

var mlbTeamNames = []string{
	"Arizona Diamondbacks", "Atlanta Braves", "Baltimore Orioles",
	"Boston Red Sox", "Chicago Cubs", "Chicago White Sox", "Cincinnati Reds",
	"Cleveland Guardians", "Colorado Rockies", "Detroit Tigers",
	"Houston Astros", "Kansas City Royals", "Los Angeles Angels",
	"Los Angeles Dodgers", "Miami Marlins", "Milwaukee Brewers",
	"Minnesota Twins", "New York Mets", "New York Yankees",
	"Oakland Athletics", "Philadelphia Phillies", "Pittsburgh Pirates",
	"San Diego Padres", "San Francisco Giants", "Seattle Mariners",
	"St. Louis Cardinals", "Tampa Bay Rays", "Texas Rangers",
	"Toronto Blue Jays", "Washington Nationals",
}

var staticNamesByLeague = map[string][]string{
	"nba": nbaTeamNames,
	"nhl": nhlTeamNames,
	"mlb": mlbTeamNames,
}

// StaticTeams returns the per-league roster of teams, sorted by name, with
// slug IDs. These are the source-of-truth identities for every request.
func StaticTeams(leagueKey string) []models.Team {
	lg, ok := Lookup(leagueKey)
	if !ok {
		return nil
	}
	names := staticNamesByLeague[lg.Key]
	teams := make([]models.Team, 0, len(names))
	for _, name := range names {
		teams = append(teams, models.Team{ID: Slug(name), Name: name, League: lg.Name})
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams
}

// FindStaticTeam finds a team by its slug ID within a league.
func FindStaticTeam(leagueKey, teamID string) (models.Team, bool) {
	for _, team := range StaticTeams(leagueKey) {
		if team.ID == teamID {
			return team, true
		}
	}
	return models.Team{}, false
}
