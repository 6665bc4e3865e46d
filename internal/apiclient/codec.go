package apiclient

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/larek-storefront/internal/domain/order"
	"github.com/xenking/larek-storefront/internal/domain/product"
)

// decodeCatalog parses the `{total, items}` list response. imageURL rewrites
// each item's image path.
func decodeCatalog(data []byte, imageURL func(string) string) (product.Catalog, error) {
	var c product.Catalog
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "total":
			v, err := d.Int()
			if err != nil {
				return errors.Wrap(err, "total")
			}
			c.Total = v
			return nil
		case "items":
			return d.Arr(func(d *jx.Decoder) error {
				p, err := decodeProductObj(d, imageURL)
				if err != nil {
					return err
				}
				c.Items = append(c.Items, p)
				return nil
			})
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return product.Catalog{}, err
	}
	return c, nil
}

// decodeProduct parses a single product response body.
func decodeProduct(data []byte, imageURL func(string) string) (product.Product, error) {
	return decodeProductObj(jx.DecodeBytes(data), imageURL)
}

func decodeProductObj(d *jx.Decoder, imageURL func(string) string) (product.Product, error) {
	var p product.Product
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			v, err := d.Str()
			p.ID = v
			return err
		case "title":
			v, err := d.Str()
			p.Title = v
			return err
		case "description":
			v, err := d.Str()
			p.Description = v
			return err
		case "image":
			v, err := d.Str()
			if err != nil {
				return err
			}
			p.Image = imageURL(v)
			return nil
		case "category":
			v, err := d.Str()
			p.Category = product.Category(v)
			return err
		case "price":
			// null means "not for sale".
			if d.Next() == jx.Null {
				return d.Null()
			}
			n, err := d.Num()
			if err != nil {
				return errors.Wrap(err, "price")
			}
			dec, err := decimal.NewFromString(n.String())
			if err != nil {
				return errors.Wrap(err, "price")
			}
			p.Price = &dec
			return nil
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return product.Product{}, err
	}
	return p, nil
}

// decodeResult parses the `{id, total}` order acknowledgement.
func decodeResult(data []byte) (order.Result, error) {
	var r order.Result
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			v, err := d.Str()
			r.ID = v
			return err
		case "total":
			n, err := d.Num()
			if err != nil {
				return errors.Wrap(err, "total")
			}
			dec, err := decimal.NewFromString(n.String())
			if err != nil {
				return errors.Wrap(err, "total")
			}
			r.Total = dec
			return nil
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return order.Result{}, err
	}
	return r, nil
}

// encodeOrder serializes the order submission body.
func encodeOrder(o order.Order) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("email", func(e *jx.Encoder) { e.Str(o.Email) })
		e.Field("phone", func(e *jx.Encoder) { e.Str(o.Phone) })
		e.Field("address", func(e *jx.Encoder) { e.Str(o.Address) })
		e.Field("payment", func(e *jx.Encoder) { e.Str(string(o.Payment)) })
		e.Field("total", func(e *jx.Encoder) { e.Num(jx.Num(o.Total.String())) })
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, id := range o.Items {
					e.Str(id)
				}
			})
		})
	})
	return e.Bytes()
}
