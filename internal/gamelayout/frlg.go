package gamelayout

func init() {
	register(FireRedLeafGreen, frlgLayout{})
}

type frlgLayout struct{}

func (frlgLayout) TeamSizeOffset() int { return 0x0034 }
func (frlgLayout) DexOwnedOffset() int { return 0x28 }
func (frlgLayout) DexSeenAOffset() int { return 0x5C }
func (frlgLayout) DexSeenBOffset() int { return 0x5F8 }
func (frlgLayout) DexSeenCOffset() int { return 0xB98 }
