// internal/pkg/pdf/template.go
package pdf

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: "Helvetica Neue", Arial, sans-serif; color: #333; font-size: 13px; }
  .header { display: flex; justify-content: space-between; margin-bottom: 32px; }
  .shop-name { font-size: 22px; font-weight: bold; color: #8b5e3c; }
  .muted { color: #888; }
  h2 { font-size: 16px; margin-bottom: 4px; }
  table { width: 100%; border-collapse: collapse; margin-top: 16px; }
  th { text-align: left; border-bottom: 2px solid #8b5e3c; padding: 6px 4px; }
  td { border-bottom: 1px solid #eee; padding: 6px 4px; }
  .num { text-align: right; }
  .totals { margin-top: 16px; width: 40%; margin-left: auto; }
  .totals td { border: none; padding: 3px 4px; }
  .totals .grand td { border-top: 2px solid #8b5e3c; font-weight: bold; font-size: 15px; }
  .status { text-transform: uppercase; letter-spacing: 1px; }
</style>
</head>
<body>
  <div class="header">
    <div>
      <div class="shop-name">{{.Shop.Name}}</div>
      <div class="muted">{{.Shop.Address}}</div>
      <div class="muted">{{.Shop.Phone}} · {{.Shop.Email}}</div>
    </div>
    <div>
      <h2>Receipt</h2>
      <div>{{.Order.OrderNumber}}</div>
      <div class="muted">{{.ReceiptDate}}</div>
      <div class="status">{{.Order.Status}}</div>
    </div>
  </div>

  <h2>Deliver to</h2>
  <div>{{.Order.RecipientName}}</div>
  <div>{{.Order.Phone}}</div>
  <div class="muted">{{.Order.Address}}</div>

  <table>
    <thead>
      <tr><th>Item</th><th class="num">Unit price</th><th class="num">Qty</th><th class="num">Total</th></tr>
    </thead>
    <tbody>
      {{range .Order.Items}}
      <tr>
        <td>{{.ProductName}}</td>
        <td class="num">{{baht .UnitPrice}}</td>
        <td class="num">{{.Quantity}}</td>
        <td class="num">{{lineTotal .}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <table class="totals">
    <tr><td>Subtotal</td><td class="num">{{baht .Order.Subtotal}}</td></tr>
    {{if .Order.CouponCode}}
    <tr><td>Discount ({{.Order.CouponCode}})</td><td class="num">-{{baht .Order.DiscountAmount}}</td></tr>
    {{end}}
    <tr><td>Delivery</td><td class="num">{{baht .Order.ShippingFee}}</td></tr>
    <tr class="grand"><td>Total</td><td class="num">{{baht .Order.Total}}</td></tr>
  </table>
</body>
</html>`
