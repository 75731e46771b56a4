package flow

import (
	"github.com/milk9111/waterguard/ecs/component"
	"github.com/milk9111/waterguard/prefabs"
	"github.com/milk9111/waterguard/save"
)

const shopTabs = 2

func (g *Game) shopItems(tab int) []prefabs.ShopItem {
	if tab == int(save.Bullet) {
		return g.content.Tuning.Shop.Bullet
	}
	return g.content.Tuning.Shop.Body
}

func (g *Game) updateShop(in component.Input) {
	if tab, ok := in.ShopTab.Index(); ok && tab < shopTabs && tab != g.shopTab {
		g.shopTab, g.shopCursor = tab, 0
		g.emit(component.CueMenuSelect)
	}

	items := g.shopItems(g.shopTab)
	prev := g.shopCursor
	if in.ShopCursorStep != 0 {
		g.shopCursor = max(0, min(len(items)-1, g.shopCursor+in.ShopCursorStep))
	}
	if i, ok := in.ShopItem.Index(); ok && i < len(items) {
		g.shopCursor = i
	}
	if prev != g.shopCursor {
		g.emit(component.CueMenuSelect)
	}

	if in.ShopBuy && g.shopCursor >= 0 && g.shopCursor < len(items) {
		g.buyOrEquip(save.Category(g.shopTab), items[g.shopCursor])
	}

	if in.Back || in.Pause {
		g.setState(StateMenu)
	}
}

// clampShopCursor keeps the cursor inside the current tab's catalog, which
// can shrink on a content reload.
func (g *Game) clampShopCursor() {
	n := len(g.shopItems(g.shopTab))
	g.shopCursor = max(0, min(n-1, g.shopCursor))
}

// buyOrEquip buys an unowned affordable item, equips an owned one, and
// does nothing for the item already equipped.
func (g *Game) buyOrEquip(c save.Category, item prefabs.ShopItem) {
	if g.wallet == nil {
		return
	}
	if g.wallet.Owns(c, item.ID) {
		if g.wallet.Active(c) == item.ID {
			return
		}
		g.wallet.SetActive(c, item.ID)
		g.emit(component.CueEquip)
		return
	}
	if g.wallet.Purchase(c, item.ID, item.Price) {
		g.emit(component.CuePurchase)
	}
}
