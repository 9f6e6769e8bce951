package archive

// lot is a single purchase that has not been fully sold yet.
// Its quantity is strictly positive for as long as the lot lives in a
// queue; a fully consumed lot is removed, never left at zero.
type lot struct {
	Quantity Quantity
	Price    Money // the buy price that created the lot, immutable
}

// Amount is the remaining quote-currency value of the lot.
func (l lot) Amount() Money { return l.Price.Mul(l.Quantity) }

// lots is a FIFO queue of surviving purchases for one pair: buys append
// to the back, sells consume from the front.
type lots []lot

// consume removes quantity from the front of the queue. The front lot
// is removed entirely when the outstanding quantity covers it,
// otherwise it is reduced in place. Selling more than the queue holds
// drains it and silently drops the excess.
func (l lots) consume(quantity Quantity) lots {
	for len(l) > 0 && quantity.IsPositive() {
		front := l[0]
		if front.Quantity.GreaterThan(quantity) {
			l[0].Quantity = front.Quantity.Sub(quantity)
			return l
		}
		quantity = quantity.Sub(front.Quantity)
		l = l[1:]
	}
	return l
}

// totalQuantity sums the remaining quantity across surviving lots.
func (l lots) totalQuantity() Quantity {
	var total Quantity
	for _, current := range l {
		total = total.Add(current.Quantity)
	}
	return total
}

// totalAmount sums the remaining quote-currency value across surviving lots.
func (l lots) totalAmount() Money {
	var total Money
	for _, current := range l {
		total = total.Add(current.Amount())
	}
	return total
}
