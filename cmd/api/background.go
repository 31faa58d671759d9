package main

import "context"

// orderWorker drains the order queue, decrementing product stock for each
// order's items. Runs until the queue is closed on shutdown, then signals
// workerDone so main can close the database behind it.
func (app *application) orderWorker() {
	defer close(app.workerDone)
	for order := range app.orderQueue {
		for _, item := range order.Items {
			err := app.DB.DecrementStock(context.Background(), item.Product, item.Quantity)
			if err != nil {
				app.errorLog.Println("Failed to update stock:", err)
			}
		}
	}
}
