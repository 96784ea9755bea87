// Package designjob contains the DesignJob aggregate and its status state
// machine. A design job tracks an order item through the design stage, from
// queueing through drafting and review to approval, which in turn triggers
// manufacturing.
package designjob
