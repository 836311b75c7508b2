package pattern

// Ordering 两个牌型的比较结果
type Ordering int

const (
	Incomparable Ordering = iota // 牌型不同且无压制关系，不能比较
	Less
	Equal
	Greater
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "Less"
	case Equal:
		return "Equal"
	case Greater:
		return "Greater"
	}
	return "Incomparable"
}

// Compare 比较两个牌型
// 优先级：火箭 > 炸弹 > 同牌型比主点数；炸弹之间先比张数再比点数；
// 牌型不同（除炸弹压制外）不可比较，花色永远不参与比牌
func Compare(a, b Pattern) Ordering {
	if a.IsEmpty() || b.IsEmpty() {
		return Incomparable
	}

	// 火箭最大
	if a.Kind == Rocket || b.Kind == Rocket {
		switch {
		case a.Kind == Rocket && b.Kind == Rocket:
			return Equal
		case a.Kind == Rocket:
			return Greater
		default:
			return Less
		}
	}

	// 炸弹压制任意非炸弹牌型
	if a.Kind == Bomb || b.Kind == Bomb {
		switch {
		case a.Kind == Bomb && b.Kind != Bomb:
			return Greater
		case a.Kind != Bomb:
			return Less
		}
		// 两个炸弹：先比张数，再比点数
		if a.Size() != b.Size() {
			if a.Size() > b.Size() {
				return Greater
			}
			return Less
		}
		return compareRank(a, b)
	}

	if a.Kind != b.Kind {
		return Incomparable
	}
	return compareRank(a, b)
}

func compareRank(a, b Pattern) Ordering {
	switch {
	case a.MainRank > b.MainRank:
		return Greater
	case a.MainRank < b.MainRank:
		return Less
	default:
		return Equal
	}
}

// CanBeat 判断 a 是否能压过 b
func CanBeat(a, b Pattern) bool {
	return Compare(a, b) == Greater
}
