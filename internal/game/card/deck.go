package card

import (
	"math/rand/v2"
	"sort"
)

// Deck 定义牌堆
type Deck []Card

// 掼蛋使用两副牌，四人每人 27 张
const (
	CardsPerDeck   = 54
	StandardDecks  = 2
	PlayersPerGame = 4
)

// NewDeck 生成一副 54 张的牌
func NewDeck() Deck {
	deck := make(Deck, 0, CardsPerDeck)
	for s := Spade; s <= Diamond; s++ {
		for r := Rank3; r <= Rank2; r++ {
			deck = append(deck, New(s, r))
		}
	}
	deck = append(deck, New(Joker, RankSmallJoker), New(Joker, RankBigJoker))
	return deck
}

// NewDecks 生成指定副数的牌堆
func NewDecks(decks int) Deck {
	if decks <= 0 {
		return nil
	}
	all := make(Deck, 0, decks*CardsPerDeck)
	for range decks {
		all = append(all, NewDeck()...)
	}
	return all
}

// Shuffle 洗牌
func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Deal 将牌平均发给指定数量的玩家，余牌丢弃
func (d Deck) Deal(players int) []Deck {
	if players <= 0 || len(d) == 0 {
		return nil
	}
	perPlayer := len(d) / players
	hands := make([]Deck, players)
	for i := range players {
		hands[i] = make(Deck, perPlayer)
		copy(hands[i], d[i*perPlayer:(i+1)*perPlayer])
		hands[i].Sort()
	}
	return hands
}

// Sort 理牌：先按点数降序，同点数按花色展示顺序
func (d Deck) Sort() {
	sort.SliceStable(d, func(i, j int) bool {
		if d[i].Rank != d[j].Rank {
			return d[i].Rank > d[j].Rank
		}
		return d[i].Suit.DisplayOrder() > d[j].Suit.DisplayOrder()
	})
}

// Remove 从牌堆中移除指定的牌（按对局相等性逐张匹配），返回新的牌堆
func (d Deck) Remove(cards []Card) Deck {
	remaining := make(Deck, len(d))
	copy(remaining, d)
	for _, c := range cards {
		for i, rc := range remaining {
			if rc.Equals(c) {
				remaining = append(remaining[:i], remaining[i+1:]...)
				break
			}
		}
	}
	return remaining
}

// Contains 检查牌堆是否包含指定的牌（考虑两副牌的重复张数）
func (d Deck) Contains(cards []Card) bool {
	pool := make(map[[2]int]int, len(d))
	for _, c := range d {
		pool[[2]int{int(c.Suit), int(c.Rank)}]++
	}
	for _, c := range cards {
		key := [2]int{int(c.Suit), int(c.Rank)}
		if pool[key] == 0 {
			return false
		}
		pool[key]--
	}
	return true
}
