package gamelayout

func init() {
	register(Emerald, emeraldLayout{})
}

type emeraldLayout struct{}

func (emeraldLayout) TeamSizeOffset() int { return 0x0234 }
func (emeraldLayout) DexOwnedOffset() int { return 0x28 }
func (emeraldLayout) DexSeenAOffset() int { return 0x5C }
func (emeraldLayout) DexSeenBOffset() int { return 0x988 }
func (emeraldLayout) DexSeenCOffset() int { return 0xCA4 }
