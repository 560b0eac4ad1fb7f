package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"store-frontend/internal/order"
	"store-frontend/internal/product"
	"store-frontend/internal/session"
	"store-frontend/internal/utils"
	"store-frontend/internal/view"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// banner prints the error and success lines every screen can carry.
func banner(w io.Writer, errMsg, success string) {
	if errMsg != "" {
		fmt.Fprintf(w, "Error: %s\n", errMsg)
	}
	if success != "" {
		fmt.Fprintln(w, success)
	}
}

func ProductList(w io.Writer, s view.ProductListState) error {
	banner(w, s.Error, "")
	if s.Loading {
		_, err := fmt.Fprintln(w, "Loading products...")
		return err
	}
	if msg := s.EmptyMessage(); msg != "" {
		_, err := fmt.Fprintln(w, msg)
		return err
	}
	if len(s.Visible) == 0 {
		return nil
	}

	fmt.Fprintln(w, s.Heading())
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK")
	for _, p := range s.Visible {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.DisplayName(), utils.FormatPrice(p.Price), product.StockLabel(p.Stock))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if s.ShowSeeAll() {
		fmt.Fprintln(w, "See All")
	}
	return nil
}

func ProductDetail(w io.Writer, s view.ProductDetailState) error {
	banner(w, s.Error, s.Success)
	if s.Loading {
		_, err := fmt.Fprintln(w, "Loading product...")
		return err
	}
	p := s.Product
	if p == nil {
		return nil
	}

	tw := newTable(w)
	fmt.Fprintf(tw, "Product\t#%d %s\n", p.ID, p.DisplayName())
	fmt.Fprintf(tw, "Price\t%s\n", utils.FormatPrice(p.Price))
	if p.InStock() {
		fmt.Fprintf(tw, "Stock\t%s\n", product.StockLabel(p.Stock))
	} else {
		fmt.Fprintf(tw, "Stock\tOut of stock\n")
	}
	fmt.Fprintf(tw, "Image\t%s\n", p.ImageOrDefault())
	return tw.Flush()
}

func Orders(w io.Writer, s view.OrdersState) error {
	banner(w, s.Error, s.Success)
	switch {
	case s.Loading:
		_, err := fmt.Fprintln(w, "Loading orders...")
		return err
	case len(s.Orders) == 0:
		_, err := fmt.Fprintln(w, "You have no orders yet.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ORDER\tITEM\tQTY\tPRICE\tTOTAL\tSTATUS\tCREATED\tACTIONS")
	for _, o := range s.Orders {
		fmt.Fprintf(tw, "#%d\t%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			o.ID,
			o.ItemID,
			o.Quantity,
			utils.FormatPrice(o.Price),
			utils.FormatPrice(o.Total()),
			o.Status.Label(),
			utils.FormatDate(o.CreatedAt.Time),
			actions(o, s),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if s.Refreshing {
		fmt.Fprintln(w, "Refreshing...")
	}
	if s.AutoRefresh {
		fmt.Fprintf(w, "Auto-refresh on (last update %s)\n", time.Now().Format(time.Kitchen))
	}
	return nil
}

// actions lists what the user may do next with o.
func actions(o order.Order, s view.OrdersState) string {
	var out []string
	if order.CanPay(o) {
		if s.PayingID == o.ID {
			out = append(out, "processing...")
		} else {
			out = append(out, "pay")
		}
	}
	if order.CanCancel(o) {
		if s.CancellingID == o.ID {
			out = append(out, "cancelling...")
		} else {
			out = append(out, "cancel")
		}
	}
	if o.DeliveryRequestSent {
		out = append(out, "delivery requested")
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, ", ")
}

func Order(w io.Writer, o order.Order) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Order\t#%d\n", o.ID)
	fmt.Fprintf(tw, "Item\t%d\n", o.ItemID)
	fmt.Fprintf(tw, "Quantity\t%d\n", o.Quantity)
	fmt.Fprintf(tw, "Price\t%s\n", utils.FormatPrice(o.Price))
	fmt.Fprintf(tw, "Total\t%s\n", utils.FormatPrice(o.Total()))
	fmt.Fprintf(tw, "Status\t%s\n", o.Status.Label())
	fmt.Fprintf(tw, "Created\t%s\n", utils.FormatDate(o.CreatedAt.Time))
	fmt.Fprintf(tw, "Delivery requested\t%t\n", o.DeliveryRequestSent)
	return tw.Flush()
}

// Session describes the stored credential for whoami.
func Session(w io.Writer, sess session.Session, now time.Time) error {
	if sess.IsZero() {
		_, err := fmt.Fprintln(w, "Not logged in.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintf(tw, "User\t%s %s\n", utils.Initial(sess.Username, "U"), sess.Username)
	if claims, err := sess.Claims(); err == nil {
		if sub := claims.Subject; sub != "" {
			fmt.Fprintf(tw, "Subject\t%s\n", sub)
		}
		if exp := claims.Expiry(); !exp.IsZero() {
			state := "valid"
			if claims.Expired(now) {
				state = "expired"
			}
			fmt.Fprintf(tw, "Token expires\t%s (%s)\n", utils.FormatDate(exp), state)
		}
	}
	return tw.Flush()
}
