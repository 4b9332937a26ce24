package game

// Table constants.
const (
	HandSize                  = 9
	TricksPerTurn             = 9
	WinningPoints             = 1000
	MatchAdditionalPoints     = 100
	LastTrickAdditionalPoints = 5
)

// PlayerID identifies a seat. Seats 1 and 3 form Team1, seats 2 and 4 Team2.
type PlayerID uint8

const (
	Player1 PlayerID = iota
	Player2
	Player3
	Player4
)

const PlayerCount = 4

// AllPlayers lists the seats in playing order.
var AllPlayers = [PlayerCount]PlayerID{Player1, Player2, Player3, Player4}

// Team is Team1 for P1 and P3, Team2 for P2 and P4.
func (p PlayerID) Team() TeamID {
	if p%2 == 0 {
		return Team1
	}
	return Team2
}

func (p PlayerID) IsValid() bool { return p < PlayerCount }

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	case Player3:
		return "P3"
	case Player4:
		return "P4"
	default:
		return "P?"
	}
}

// TeamID identifies one of the two partnerships.
type TeamID uint8

const (
	Team1 TeamID = iota
	Team2
)

const TeamCount = 2

var AllTeams = [TeamCount]TeamID{Team1, Team2}

// Other is the opposing team.
func (t TeamID) Other() TeamID { return 1 - t }

func (t TeamID) IsValid() bool { return t < TeamCount }

func (t TeamID) String() string {
	switch t {
	case Team1:
		return "Team1"
	case Team2:
		return "Team2"
	default:
		return "Team?"
	}
}

// Color is a suit. The order is the one used by every packed encoding.
type Color uint8

const (
	Spade Color = iota
	Heart
	Diamond
	Club
)

const ColorCount = 4

var AllColors = [ColorCount]Color{Spade, Heart, Diamond, Club}

var colorSymbols = [ColorCount]string{"♠", "♥", "♦", "♣"}

// IsValid reports whether c is one of the four colors.
func (c Color) IsValid() bool { return c < ColorCount }

func (c Color) String() string {
	if !c.IsValid() {
		return "?"
	}
	return colorSymbols[c]
}

// Rank is a card rank in natural order, Six lowest.
type Rank uint8

const (
	Six Rank = iota
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const RankCount = 9

// AllRanks lists the ranks in natural order.
var AllRanks = [RankCount]Rank{Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

var (
	rankLabels = [RankCount]string{"6", "7", "8", "9", "10", "J", "Q", "K", "A"}
	// Trump order ascending: 6 7 8 10 Q K A 9 J.
	trumpOrdinals = [RankCount]int{0, 1, 2, 7, 3, 8, 4, 5, 6}
)

func (r Rank) IsValid() bool { return r < RankCount }

// TrumpOrdinal is the position of the rank in the trump order.
func (r Rank) TrumpOrdinal() int { return trumpOrdinals[r] }

func (r Rank) String() string {
	if !r.IsValid() {
		return "?"
	}
	return rankLabels[r]
}
