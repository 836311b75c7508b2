package card

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Suit 定义花色
type Suit int

// Rank 定义点数
type Rank int

// JokerKind 定义王牌种类
type JokerKind int

const (
	Spade   Suit = iota // 黑桃
	Heart               // 红心
	Club                // 梅花
	Diamond             // 方块
	Joker               // 王牌
)

const (
	JokerNone JokerKind = iota
	JokerSmall
	JokerBig
)

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Spade:   "♠",
	Heart:   "♥",
	Club:    "♣",
	Diamond: "♦",
	Joker:   "",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return ""
}

// DisplayOrder 花色展示顺序，仅用于理牌排序，不参与比牌：红心 > 方块 > 梅花 > 黑桃
func (s Suit) DisplayOrder() int {
	switch s {
	case Heart:
		return 4
	case Diamond:
		return 3
	case Club:
		return 2
	case Spade:
		return 1
	}
	return 0
}

// 点数从 3 开始递增，大小王最大：大王 > 小王 > 2 > A > K > ... > 3
const (
	Rank3 Rank = iota + 3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ // Jack
	RankQ // Queen
	RankK // King
	RankA // Ace
	Rank2
	RankSmallJoker
	RankBigJoker
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	Rank3:          "3",
	Rank4:          "4",
	Rank5:          "5",
	Rank6:          "6",
	Rank7:          "7",
	Rank8:          "8",
	Rank9:          "9",
	Rank10:         "10",
	RankJ:          "J",
	RankQ:          "Q",
	RankK:          "K",
	RankA:          "A",
	Rank2:          "2",
	RankSmallJoker: "w",
	RankBigJoker:   "W",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// Value 返回用于比较大小的点数权重
func (r Rank) Value() int {
	return int(r)
}

// IsNatural 判断是否为可参与顺子的自然点数（3..A，2 和王牌不参与）
func (r Rank) IsNatural() bool {
	return r >= Rank3 && r <= RankA
}

// charToRank 用于快速查找字符对应的 Rank
var charToRank = map[rune]Rank{
	'3': Rank3,
	'4': Rank4,
	'5': Rank5,
	'6': Rank6,
	'7': Rank7,
	'8': Rank8,
	'9': Rank9,
	'T': Rank10,
	'J': RankJ,
	'Q': RankQ,
	'K': RankK,
	'A': RankA,
	'2': Rank2,
	'w': RankSmallJoker,
	'W': RankBigJoker,
}

func RankFromChar(char rune) (Rank, error) {
	if rank, ok := charToRank[char]; ok {
		return rank, nil
	}
	return -1, fmt.Errorf("无法识别的点数: %c", char)
}

// Card 定义一张牌
// ID 是稳定标识，仅用于区分两副牌中同点数同花色的两张牌；
// 对局中的相等性只看花色和点数。
type Card struct {
	ID        string    `json:"id"`
	Suit      Suit      `json:"suit"`
	Rank      Rank      `json:"rank"`
	JokerKind JokerKind `json:"joker_kind"`
}

// New 创建一张牌并分配稳定 ID
func New(suit Suit, rank Rank) Card {
	kind := JokerNone
	switch rank {
	case RankSmallJoker:
		kind = JokerSmall
	case RankBigJoker:
		kind = JokerBig
	}
	return Card{
		ID:        uuid.New().String(),
		Suit:      suit,
		Rank:      rank,
		JokerKind: kind,
	}
}

// Equals 对局意义上的相等：花色和点数相同即视为同一张牌
func (c Card) Equals(other Card) bool {
	return c.Suit == other.Suit && c.Rank == other.Rank
}

// IsJoker 是否为王牌
func (c Card) IsJoker() bool {
	return c.JokerKind != JokerNone
}

func (c Card) String() string {
	if c.IsJoker() {
		if c.JokerKind == JokerBig {
			return "大王"
		}
		return "小王"
	}
	return c.Suit.String() + c.Rank.String()
}
